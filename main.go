package main

import "github.com/AstroLabVN/astrolab-setup-mint/cmd"

func main() {
	cmd.Execute()
}
