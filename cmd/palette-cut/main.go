// palette-cut - colour timelines and palettes from video files
//
// palette-cut samples frames evenly across a video's duration, reduces
// each frame to a single averaged colour, and analyses the sequence
// for its dominant, average and least-used colours.
//
// Copyright (c) 2026 Kartikeya Kotkar
// Licensed under the MIT License
package main

import (
	"github.com/KartikeyaKotkar/palette-cut/internal/cli"
)

func main() {
	cli.Execute()
}
