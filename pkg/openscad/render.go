package openscad

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Matches: use <file.scad>, include <file.scad>
var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer turns OpenSCAD sources into STL files
type Renderer struct {
	workDir string
}

// NewRenderer resolves relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{workDir: workDir}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL runs openscad to render scadFile into outputFile
func (r *Renderer) RenderToSTL(scadFile, outputFile string) error {
	if _, err := exec.LookPath("openscad"); err != nil {
		return fmt.Errorf("openscad not found in PATH: %w", err)
	}

	cmd := exec.Command("openscad", "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to render %s: %w\n%s", scadFile, err, strings.TrimSpace(output.String()))
	}
	return nil
}

// ResolveDependencies returns scadFile and every file it uses or includes,
// transitively, as absolute paths
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	var deps []string
	visited := make(map[string]bool)

	queue := []string{r.abs(scadFile)}
	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]
		if visited[file] {
			continue
		}
		visited[file] = true
		deps = append(deps, file)

		direct, err := r.parseDependencies(file)
		if err != nil {
			return nil, err
		}
		queue = append(queue, direct...)
	}
	return deps, nil
}

func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyRegex.FindStringSubmatch(line); len(m) > 1 {
			deps = append(deps, r.resolve(m[1], dir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolve looks next to the including file first, then in the work directory
func (r *Renderer) resolve(dep, dir string) string {
	local := filepath.Clean(filepath.Join(dir, dep))
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Clean(filepath.Join(r.workDir, dep))
}
