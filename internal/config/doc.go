// Package config provides configuration parsing for arbor.
//
// The configuration is stored in arbor.yaml (or arbor.json) next to the
// program using it. Every field is optional.
//
// # Configuration File Structure
//
//	mode: poll          # instant | poll
//	debug: true         # validate hook order
//	log:
//	  level: debug      # debug | info | warn | error
//	  format: text      # text | json
//	inspector:
//	  addr: 127.0.0.1:7070
//	metrics:
//	  enabled: true
//	  namespace: myapp
//	  subsystem: ui
//	tracing:
//	  enabled: true
//	  tracerName: myapp
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	opts, _ := cfg.ModelOptions(cfg.NewLogger(os.Stderr))
//	model := arbor.New(opts...)
package config
