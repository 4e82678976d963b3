package fractals

import "sort"

// Default views.
var (
	// Whole Julia set for |c| < 1
	JuliaView = Region{
		Xmin: -1.5,
		Xmax: 1.5,
		Ymin: -1.5,
		Ymax: 1.5,
	}

	// Whole Mandelbrot set
	MandelbrotView = Region{
		Xmin: -2,
		Xmax: 1,
		Ymin: -1.5,
		Ymax: 1.5,
	}
)

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

var namedRegions = map[string]Region{
	"julia":                   JuliaView,
	"mandelbrot":              MandelbrotView,
	"seahorse-valley":         SeahorseValley,
	"elephant-valley":         ElephantValley,
	"spiral-minibrot":         SpiralMinibrot,
	"triple-spiral":           TripleSpiral,
	"valley-of-the-dragon":    ValleyOfTheDragon,
	"minibrot-in-mini-spiral": MinibrotInMiniSpiral,
}

// RegionByName looks up a named region.
func RegionByName(name string) (Region, bool) {
	r, ok := namedRegions[name]
	return r, ok
}

// RegionNames returns the names accepted by RegionByName, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(namedRegions))
	for name := range namedRegions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
