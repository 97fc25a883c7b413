package main

import "github.com/scanbit/scanbit/cmd/scanbit"

func main() { scanbit.Execute() }
