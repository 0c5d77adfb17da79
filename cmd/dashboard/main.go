// @title Labor Dashboard API
// @version 1.0
// @description Aggregation and chart normalization for Chilean labor market and higher education dashboards.
// @host localhost:8080
// @BasePath /api/v1
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
