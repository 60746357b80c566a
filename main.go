package main

import "gig-marketplace.com/gig-marketplace/cmd"

func main() {
	cmd.Execute()
}
