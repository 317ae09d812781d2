package digit

// templateArt holds the ten digit templates as 16x16 glyph art, parsed once
// at package init. '#' is ink, '.' is background. The glyphs are full-bleed
// (ink touches all four grid edges) because the normalizer crops the input
// to its ink bounding box before resampling; a glyph with blank margins
// could never align with a cropped stroke.
var templateArt = [10][GridSize]string{
	{ // 0
		"################",
		"################",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"################",
		"################",
	},
	{ // 1
		"......###.......",
		"....#####.......",
		"..#######.......",
		"..##..###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"......###.......",
		"################",
		"################",
	},
	{ // 2
		"################",
		"################",
		".............###",
		".............###",
		"............###.",
		"..........###...",
		"........###.....",
		"......###.......",
		".....###........",
		"...###..........",
		"..###...........",
		".###............",
		"###.............",
		"###.............",
		"################",
		"################",
	},
	{ // 3
		"################",
		"################",
		".............###",
		".............###",
		".............###",
		".............###",
		"......##########",
		"......##########",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		"################",
		"################",
	},
	{ // 4
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"################",
		"################",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
	},
	{ // 5
		"################",
		"################",
		"###.............",
		"###.............",
		"###.............",
		"###.............",
		"################",
		"################",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		"################",
		"################",
	},
	{ // 6
		"################",
		"################",
		"###.............",
		"###.............",
		"###.............",
		"###.............",
		"################",
		"################",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"################",
		"################",
	},
	{ // 7
		"################",
		"################",
		".............###",
		".............###",
		"............###.",
		"...........###..",
		"..........###...",
		".........###....",
		"........###.....",
		".......###......",
		"......###.......",
		".....###........",
		"....###.........",
		"...###..........",
		"..###...........",
		"###.............",
	},
	{ // 8
		"################",
		"################",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"################",
		"################",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"################",
		"################",
	},
	{ // 9
		"################",
		"################",
		"###..........###",
		"###..........###",
		"###..........###",
		"###..........###",
		"################",
		"################",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		".............###",
		"################",
		"################",
	},
}

// Templates are the ten fixed digit templates, indexed by digit value.
var Templates [10]Grid

func init() {
	for d, art := range templateArt {
		var g Grid
		for y, row := range art {
			if len(row) != GridSize {
				panic("digit: template row must be 16 cells")
			}
			for x := 0; x < GridSize; x++ {
				if row[x] == '#' {
					g.Set(x, y, true)
				}
			}
		}
		Templates[d] = g
	}
}
