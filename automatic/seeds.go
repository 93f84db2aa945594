package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds makes n random game seeds.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// SaveSeeds writes one base64 (raw URL alphabet) seed per line.
func SaveSeeds(seeds [][32]byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating seed file: %w", err)
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# game seeds, 32 bytes each, base64 raw URL encoding")
	for _, seed := range seeds {
		fmt.Fprintln(w, base64.RawURLEncoding.EncodeToString(seed[:]))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing seed file: %w", err)
	}
	return f.Close()
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("seed at line %d is %d bytes, expected 32", lineNum, len(decoded))
		}
		var seed [32]byte
		copy(seed[:], decoded)
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return seeds, nil
}
