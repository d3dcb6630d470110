// Command allocbench replays allocation traces against the heap package and
// reports the resulting layout and consistency, the way a CS:APP-style
// malloc driver replays reference/student traces against mm_malloc.
package main

func main() {
	execute()
}
