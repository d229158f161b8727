// Command gatesim is a command line front end to the gatesim simulator.
//
package main

func main() {
	Execute()
}
