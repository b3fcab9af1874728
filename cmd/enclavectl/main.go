package main

func main() {
	fatalIfErr(Execute())
}
