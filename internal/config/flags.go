package config

import "flag"

func ParseFlags(base Config) Config {
	path := flag.String("path", base.Path, "Root directory to scan")
	workers := flag.Int("workers", base.Workers, "Scanner worker count (0 = auto)")
	maxDepth := flag.Int("max-depth", base.MaxDepth, "Ring depth to lay out")
	debug := flag.Bool("debug", base.Debug, "Write a debug log file")
	flag.Parse()

	base.Path = *path
	base.Workers = *workers
	base.MaxDepth = *maxDepth
	base.Debug = *debug
	return base
}
