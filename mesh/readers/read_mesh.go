package readers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadMeshFile reads a mesh file based on extension, using the default group
func ReadMeshFile(filename string) (*MeshData, error) {
	return ReadMeshGroup(filename, DefaultGroup)
}

// ReadMeshGroup reads the mesh stored under group, based on extension
func ReadMeshGroup(filename, group string) (*MeshData, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".h5", ".hdf5", ".he5":
		return ReadATSMesh(filename, group)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// CountCommentLines returns the number of lines starting with '#', the
// header length of an observation data file
func CountCommentLines(filename string) (count int, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "#") {
			count++
		}
	}
	if err = scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", filename, err)
	}
	return count, nil
}
