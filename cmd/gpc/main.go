package main

import (
	"os"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
