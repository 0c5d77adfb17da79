package source

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"labor-dashboard/internal/model"
)

//go:embed catalog/*.json
var embedded embed.FS

// Dataset names served by the catalog.
const (
	DistribucionInstitucional = "distribucion_institucional"
	BrechasGenero             = "brechas_genero"
	AnalisisSectorial         = "analisis_sectorial"
	TendenciasSectores        = "tendencias_sectores"
	TendenciasOcupacionales   = "tendencias_ocupacionales"
	ExploradorCarreras        = "explorador_carreras"
	AnalisisArea              = "analisis_area"
	MarketTrends              = "market_trends"
	SkillsDemand              = "skills_demand"
)

// Catalog holds the static sample datasets served when the backend is
// unavailable. Returned records are shared and must not be modified.
type Catalog struct {
	mu       sync.RWMutex
	datasets map[string][]model.Record
}

// NewCatalog loads the embedded datasets and generates the time series ones.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{datasets: make(map[string][]model.Record)}

	entries, err := embedded.ReadDir("catalog")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded catalog: %w", err)
	}
	for _, e := range entries {
		data, err := embedded.ReadFile(path.Join("catalog", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", e.Name(), err)
		}
		records, err := ReadJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("embedded %s: %w", e.Name(), err)
		}
		c.datasets[strings.TrimSuffix(e.Name(), ".json")] = Normalize(records)
	}

	c.datasets[TendenciasSectores] = generateSectorTrends()
	c.datasets[TendenciasOcupacionales] = generateOccupationTrends()
	return c, nil
}

// LoadDir replaces datasets with the .csv and .json files found in dir; each
// file name without extension is the dataset name.
func (c *Catalog) LoadDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read fallback dir %s: %w", dir, err)
	}
	loaded := 0
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".csv" && ext != ".json") {
			continue
		}
		records, err := ReadFile(ctx, filepath.Join(dir, e.Name()))
		if err != nil {
			return loaded, err
		}
		c.Set(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), records)
		loaded++
	}
	return loaded, nil
}

// Set stores records under name, normalized.
func (c *Catalog) Set(name string, records []model.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.datasets[name] = Normalize(records)
}

// Records returns the dataset called name.
func (c *Catalog) Records(name string) ([]model.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records, ok := c.datasets[name]
	return records, ok
}

// Names lists the datasets in alphabetical order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := lo.Keys(c.datasets)
	sort.Strings(names)
	return names
}

var (
	sampleSectors     = []string{"Tecnología", "Comercio", "Construcción", "Salud", "Educación"}
	sampleRegions     = []string{"Metropolitana", "Valparaíso", "Biobío"}
	sampleOccupations = []string{"Desarrollador de Software", "Administrador", "Médico", "Profesor", "Vendedor"}
	baseSalary        = map[string]float64{
		"Desarrollador de Software": 1800000,
		"Médico":                    2200000,
		"Administrador":             1200000,
		"Profesor":                  900000,
		"Vendedor":                  700000,
	}
)

// generateSectorTrends builds quarterly series for 2021-2023. The seed is
// fixed so every process serves the same sample.
func generateSectorTrends() []model.Record {
	rng := rand.New(rand.NewSource(2021))
	var out []model.Record
	for year := 2021; year <= 2023; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			period := fmt.Sprintf("%d-T%d", year, quarter)
			for _, sector := range sampleSectors {
				for _, region := range sampleRegions {
					base := float64(year-2020)*10 + float64(quarter)*0.5
					growth := math.Floor(rng.Float64()*10 - 3)
					trend := growth * 0.8
					if growth > 0 {
						trend = growth * 1.2
					}
					out = append(out, model.Record{
						"sector":      sector,
						"region":      region,
						"tmp_fecha":   period,
						"valor":       math.Floor(base*(rng.Float64()*0.4+0.8)) * 1000,
						"crecimiento": growth,
						"tendencia":   trend,
					})
				}
			}
		}
	}
	return out
}

// generateOccupationTrends builds monthly job-posting series for 2022-2023.
func generateOccupationTrends() []model.Record {
	rng := rand.New(rand.NewSource(2022))
	var out []model.Record
	for year := 2022; year <= 2023; year++ {
		for month := 1; month <= 12; month++ {
			date := fmt.Sprintf("%d-%02d-01", year, month)
			for _, occupation := range sampleOccupations {
				for _, region := range sampleRegions {
					base := float64(year-2021)*100 + float64(month)*2
					postings := math.Floor(base * (rng.Float64()*0.5 + 0.7))
					out = append(out, model.Record{
						"fecha":                 date,
						"ocupacion":             occupation,
						"region":                region,
						"nuevos_avisos":         postings,
						"salario_promedio":      math.Floor(baseSalary[occupation] * (rng.Float64()*0.3 + 0.85)),
						"experiencia_requerida": math.Floor(rng.Float64()*6) + 1,
						"oportunidades_remotas": math.Floor(postings * (rng.Float64()*0.4 + 0.1)),
					})
				}
			}
		}
	}
	return out
}
