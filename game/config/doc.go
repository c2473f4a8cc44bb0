// Package config loads the puzzle layouts served by the application.
//
// Layouts are JSON files in a config directory; the file name without the
// .json extension is the config ID used when creating sessions:
//
//	{
//	  "name": "Classic",
//	  "description": "The original layout",
//	  "pieces": {
//	    "block":      {"row": 0, "col": 0},
//	    "red_shoe":   {"row": 2, "col": 0},
//	    "blue_shoe":  {"row": 1, "col": 1},
//	    "black_shoe": {"row": 0, "col": 2}
//	  },
//	  "messages": {
//	    "welcome": "Bring the red shoe onto the blue one.",
//	    "solved": "Solved in %d moves!"
//	  }
//	}
//
// Loaded configs are validated with engine.ValidatePuzzleConfig and cached.
// ListConfigs also reports the optimal solution length of every layout,
// computed once per config with the breadth-first solver.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	classic := manager.GetDefault()
//	stacked, err := manager.LoadConfig("stacked")
//
// When the directory has no classic.json the first valid file becomes the
// default, and an empty directory falls back to the built-in classic layout.
package config
