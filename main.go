package main

import "github.com/ValentinKolb/oconn/cmd"

func main() {
	cmd.Execute()
}
