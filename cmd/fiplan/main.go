// Command fiplan tracks passive-income goals and projects the financial
// independence year for a plan file.
package main

func main() {
	Execute()
}
