package main

import (
	"fmt"
	"os"

	"github.com/fzft/go-chaintable/cmd"
	"github.com/fzft/go-chaintable/log"
	"go.uber.org/zap"
)

func main() {
	config, err := cmd.ParseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := log.InitLogger(config.Verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Logger.Sync()

	cli, err := cmd.NewCli(config, os.Stdout)
	if err != nil {
		log.Logger.Fatal("Failed to create shell", zap.Error(err))
	}
	if config.ShowVersion {
		fmt.Println(cli.Version(GitSHA1(), GitDirty()))
		return
	}
	if err := cli.Run(); err != nil {
		log.Logger.Error("shell exited", zap.Error(err))
		os.Exit(1)
	}
}
