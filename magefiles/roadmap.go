//go:build mage

package main

import "fmt"

// Trials cross-references ranked targets against clinical-trial registries.
func Trials() error {
	fmt.Println("[trials] Cross-reference ranked targets against clinical-trial registries.")
	fmt.Println("[trials] Not yet implemented.")
	return nil
}

// Docking prepares ranked-target structures for molecular docking runs.
func Docking() error {
	fmt.Println("[docking] Prepare target structures for molecular docking runs.")
	fmt.Println("[docking] Not yet implemented.")
	return nil
}

// Chemistry generates candidate ligand series for top-ranked targets.
func Chemistry() error {
	fmt.Println("[chemistry] Generate candidate ligand series for top-ranked targets.")
	fmt.Println("[chemistry] Not yet implemented.")
	return nil
}
