// Package template seeds new sessions with per-template scaffold files.
package template

import (
	"strings"

	"github.com/omegalabs/studio/internal/models"
	"github.com/omegalabs/studio/internal/vfs"
)

type scaffoldFile struct {
	dir     string // folder path under root, "" for root itself
	name    string
	content string
}

var scaffolds = map[models.Template][]scaffoldFile{
	models.TemplateAndroidCompose: {
		{dir: "app/src/main", name: "MainActivity.kt", content: "package com.omega.app\n\nimport androidx.activity.ComponentActivity\n\nclass MainActivity : ComponentActivity()\n"},
		{dir: "app/src/main/ui", name: "Theme.kt", content: "package com.omega.app.ui\n\n// Material3 theme definition\n"},
		{dir: "", name: "build.gradle.kts", content: "plugins {\n    id(\"com.android.application\")\n}\n"},
	},
	models.TemplateWebReact: {
		{dir: "public", name: "index.html", content: "<!doctype html>\n<html><body><div id=\"root\"></div></body></html>\n"},
		{dir: "src", name: "App.tsx", content: "export default function App() {\n  return <main>Omega</main>;\n}\n"},
		{dir: "src", name: "styles.css", content: ":root { color-scheme: dark; }\n"},
	},
	models.TemplateGameCanvas: {
		{dir: "", name: "index.html", content: "<!doctype html>\n<html><body><canvas id=\"game\"></canvas></body></html>\n"},
		{dir: "src", name: "engine.js", content: "export function loop(tick) {\n  requestAnimationFrame(() => loop(tick));\n  tick();\n}\n"},
	},
	models.TemplateBackendNode: {
		{dir: "", name: "server.js", content: "const http = require('http');\nhttp.createServer((req, res) => res.end('ok')).listen(8080);\n"},
		{dir: "", name: "package.json", content: "{\n  \"name\": \"server-core\",\n  \"main\": \"server.js\"\n}\n"},
	},
	models.TemplateAIAgent: {
		{dir: "", name: "agent.py", content: "def run(goal: str) -> str:\n    return f\"executing: {goal}\"\n"},
		{dir: "", name: "prompts.md", content: "# Prompt Library\n"},
	},
}

// Apply seeds the scaffold for tmpl under rootID and returns the grown file
// set. Unknown templates (and android-empty) add nothing.
func Apply(files []models.VirtualFile, rootID string, tmpl models.Template) []models.VirtualFile {
	scaffold, ok := scaffolds[tmpl]
	if !ok {
		return files
	}

	dirs := map[string]string{"": rootID}
	for _, sf := range scaffold {
		parent := ensureDir(&files, dirs, rootID, sf.dir)
		files, _ = vfs.CreateFile(files, parent, sf.name, sf.content)
	}
	return files
}

// ensureDir creates the folder chain for a slash-separated path, reusing
// folders created earlier in the same Apply call.
func ensureDir(files *[]models.VirtualFile, dirs map[string]string, rootID, path string) string {
	if path == "" {
		return rootID
	}
	if id, ok := dirs[path]; ok {
		return id
	}

	parent := rootID
	var walked string
	for _, seg := range strings.Split(path, "/") {
		if walked == "" {
			walked = seg
		} else {
			walked += "/" + seg
		}
		if id, ok := dirs[walked]; ok {
			parent = id
			continue
		}
		grown, _ := vfs.CreateFolder(*files, parent, seg)
		*files = grown
		parent = grown[len(grown)-1].ID
		dirs[walked] = parent
	}
	return parent
}
