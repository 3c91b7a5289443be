//go:build ignore

// Import tool: reads a JSON file of projects (optionally with stories) and
// POSTs them to a running backend using the shared admin token.
//
// Usage:
//
//	go run import_projects.go <projects.json> [baseURL]
//
// The file holds an array of objects shaped like the Project model, each
// optionally carrying a "stories" array shaped like the Story model.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Project importer")
	fmt.Println("----------------")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run import_projects.go <projects.json> [baseURL]")
		os.Exit(1)
	}
	path := os.Args[1]
	baseURL := "http://localhost:8080"
	if len(os.Args) > 2 {
		baseURL = os.Args[2]
	}

	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		fmt.Println("ADMIN_TOKEN is not set")
		os.Exit(1)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	var projects []map[string]any
	if err := json.Unmarshal(raw, &projects); err != nil {
		fmt.Printf("Error parsing %s: %v\n", path, err)
		os.Exit(1)
	}

	for _, project := range projects {
		slug, _ := project["slug"].(string)
		stories, _ := project["stories"].([]any)
		delete(project, "stories")

		if err := post(baseURL+"/api/projects", adminToken, project); err != nil {
			fmt.Printf("  ✗ project %s: %v\n", slug, err)
			continue
		}
		fmt.Printf("  ✓ project %s\n", slug)

		for _, s := range stories {
			story, ok := s.(map[string]any)
			if !ok {
				continue
			}
			storySlug, _ := story["slug"].(string)
			if err := post(fmt.Sprintf("%s/api/projects/%s/stories", baseURL, slug), adminToken, story); err != nil {
				fmt.Printf("    ✗ story %s: %v\n", storySlug, err)
				continue
			}
			fmt.Printf("    ✓ story %s\n", storySlug)
		}
	}
}

func post(url, adminToken string, body map[string]any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-admin-token", adminToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return nil
}
