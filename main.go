package main

import "github.com/eflow-hydraulics/hdf-inspector/cmd"

func main() {
	cmd.Execute()
}
