package main

import (
	"context"
	"flag"
	"log"

	"github.com/banachtech/alphads/config"
	"github.com/banachtech/alphads/mainfuncs"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	mode := flag.String("mode", "run", "run a single calibration or sweep alpha: run|tune")
	alpha := flag.Float64("alpha", -1, "override alpha in [0,1]")
	n := flag.Int("n", 0, "override the number of future stock values")
	flag.Parse()

	cfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		log.Printf("warning: config file: %v, using defaults", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	if *alpha >= 0 {
		cfg.Alpha = *alpha
	}
	if *n > 0 {
		cfg.N = *n
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	switch *mode {
	case "run":
		err = mainfuncs.Run(ctx, cfg)
	case "tune":
		err = mainfuncs.Tune(ctx, cfg)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal(err)
	}
}
