package policy

import (
	"io/fs"
	"os"
	"path"
	"strings"
)

// ReadBundle collects the policy modules under dir, keyed by relative path.
func ReadBundle(dir string) (map[string]string, error) {
	return readModules(os.DirFS(dir))
}

// readModules walks fsys for .rego sources. Rego unit tests (*_test.rego)
// are left out since they are not part of the decision.
func readModules(fsys fs.FS) (map[string]string, error) {
	modules := map[string]string{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".rego" || strings.HasSuffix(p, "_test.rego") {
			return nil
		}
		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		modules[p] = string(src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}
