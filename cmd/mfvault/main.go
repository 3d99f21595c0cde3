// Package main starts the vault service.
package main

import "github.com/magicfolder/mfvault/pkg/cmd"

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
