package main

import "github.com/SscSPs/settlement_ledger/internal/cli"

func main() {
	cli.Execute()
}
