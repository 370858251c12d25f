package main

import (
	"io"

	"gopkg.in/yaml.v3"
)

func cmdConfig(args []string, out io.Writer) error {
	a, err := newApp("config", args, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(a.cfg); err != nil {
		return err
	}
	return enc.Close()
}
