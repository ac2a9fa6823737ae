// Package config provides configuration structures and utilities for
// circusanalytics. It defines where input data is read from, where the
// report, chart and markdown outputs are written, and whether runs are
// archived.
package config
