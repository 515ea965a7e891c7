package main

import (
	"fmt"
	"os"

	"github.com/metrica-project/metrica-bot/core/bootstrap"
	corecmd "github.com/metrica-project/metrica-bot/core/cmd"
	coreconfig "github.com/metrica-project/metrica-bot/core/config"
	"github.com/metrica-project/metrica-bot/metrica"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		LoadConfig: coreconfig.Load,
		Bootstrap: func(cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
			if err := bootstrap.Run(bootstrap.Options{Config: cfg}); err != nil {
				return nil, err
			}
			return metrica.New(cfg)
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
