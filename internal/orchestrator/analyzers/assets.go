package analyzers

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func init() {
	Registry["assets"] = Assets
}

// AssetCategory groups asset file extensions for the Supply preset.
type AssetCategory struct {
	Category string
	Count    int
	Bytes    int64
}

// AssetsData is the `assets` receipt section: a census of files
// (images, fonts, data, docs, media, lockfiles) by extension. Some of
// these extensions (.json, .yaml, .toml, .md, .txt) are also counted
// by the Scanner as languages.
type AssetsData struct {
	Categories []AssetCategory
	TotalFiles int
	TotalBytes int64
}

var assetExtensions = map[string]string{
	".png": "image", ".jpg": "image", ".jpeg": "image", ".gif": "image", ".svg": "image", ".webp": "image", ".ico": "image",
	".woff": "font", ".woff2": "font", ".ttf": "font", ".otf": "font", ".eot": "font",
	".json": "data", ".yaml": "data", ".yml": "data", ".toml": "data", ".csv": "data", ".xml": "data",
	".md": "doc", ".txt": "doc", ".rst": "doc", ".adoc": "doc",
	".mp3": "media", ".mp4": "media", ".wav": "media", ".mov": "media",
	".lock": "lockfile",
}

// Assets walks root classifying every non-skipped regular file into
// an asset category by extension. It skips the VCS directories the
// Scanner skips plus node_modules, vendor, target, dist and build.
func Assets(in Input) Result {
	counts := map[string]*AssetCategory{}
	total := 0
	var totalBytes int64

	_ = filepath.Walk(in.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch info.Name() {
			case ".git", ".hg", ".svn", "node_modules", "vendor", "target", "dist", "build":
				return filepath.SkipDir
			}
			return nil
		}
		if in.Limits.MaxFiles > 0 && total >= in.Limits.MaxFiles {
			return filepath.SkipAll
		}

		ext := strings.ToLower(filepath.Ext(path))
		category, ok := assetExtensions[ext]
		if !ok {
			return nil
		}

		c, exists := counts[category]
		if !exists {
			c = &AssetCategory{Category: category}
			counts[category] = c
		}
		c.Count++
		c.Bytes += info.Size()
		total++
		totalBytes += info.Size()
		return nil
	})

	var cats []AssetCategory
	for _, c := range counts {
		cats = append(cats, *c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Bytes != cats[j].Bytes {
			return cats[i].Bytes > cats[j].Bytes
		}
		return cats[i].Category < cats[j].Category
	})

	data := AssetsData{Categories: cats, TotalFiles: total, TotalBytes: totalBytes}
	return Result{Data: data, Capability: available()}
}
