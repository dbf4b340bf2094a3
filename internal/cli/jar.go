package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/net/publicsuffix"
)

// storedCookie is the on-disk form of a backend cookie
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FileJar is a cookie jar scoped to the backend and persisted between invocations
type FileJar struct {
	*cookiejar.Jar
	path string
	base *url.URL
}

// LoadJar reads the cookie file at path, if any, into a jar for base
func LoadJar(path string, base *url.URL) (*FileJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	fj := &FileJar{Jar: jar, path: path, base: base}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fj, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse cookie file %s: %w", path, err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	jar.SetCookies(base, cookies)
	return fj, nil
}

// Save writes the jar's cookies for the backend to disk.
// An empty jar removes the file.
func (j *FileJar) Save() error {
	cookies := j.Cookies(j.base)
	if len(cookies) == 0 {
		return j.Clear()
	}

	stored := make([]storedCookie, len(cookies))
	for i, c := range cookies {
		stored[i] = storedCookie{Name: c.Name, Value: c.Value}
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(j.path, data, 0600)
}

// Clear forgets every cookie and removes the file
func (j *FileJar) Clear() error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return err
	}
	j.Jar = jar
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
