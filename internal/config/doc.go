// Package config loads vcore.yaml (or vcore.yml / vcore.json) from a project
// directory and turns it into a logger, runtime options and observability
// settings.
//
// The file is optional: Load returns defaults when none is present. JSON is
// accepted because it is a subset of YAML.
//
// # Configuration File Structure
//
//	log:
//	  level: info      # debug, info, warn, error
//	  format: text     # text, json
//	runtime:
//	  reentrancy: panic  # panic, skip
//	metrics:
//	  enabled: true
//	  namespace: vcore
//	tracing:
//	  exporter: none   # stdout, none
//	  serviceName: vcore
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	logger := cfg.Logger(os.Stderr)
//	rt := reactive.NewRuntime(cfg.RuntimeOptions(logger)...)
package config
