package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"chatlog/internal/config"
)

// initConfigMain 写出默认配置文件；已存在时需要 --force 才覆盖。
func initConfigMain(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("chatlog init-config", flag.ContinueOnError)
	fs.SetOutput(out)
	path := fs.String("config", "", "Path to config file (default ~/.chatlog/config.toml)")
	force := fs.Bool("force", false, "Overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	target := *path
	if target == "" {
		target = config.DefaultPath()
	}
	if _, err := os.Stat(target); err == nil && !*force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", target)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	if err := config.Save(target, config.Default()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(out, "wrote %s\n", target)
	return nil
}
