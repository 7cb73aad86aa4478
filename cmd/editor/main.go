package main

import (
	"os"

	"model-editor/internal/editorconfig"
	"model-editor/internal/graphics"
	"model-editor/internal/logger"
)

func main() {
	log := logger.New()
	prefs, _ := editorconfig.Load()

	scenePath := prefs.ScenePath
	if len(os.Args) > 1 {
		scenePath = os.Args[1]
	}

	ed, err := newEditor(scenePath, prefs, log)
	if err != nil {
		log.Logf("load scene: %v", err)
		os.Exit(1)
	}

	graphics.Run("model editor", ed.Update, ed.Draw)
	_ = editorconfig.Save(ed.prefs)
}
