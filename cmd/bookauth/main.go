package main

import "github.com/gowtham404/bookstore-auth-go/cmd/bookauth/cmd"

func main() {
	cmd.Execute()
}
