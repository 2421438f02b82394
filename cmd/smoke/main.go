package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

var baseURL = envOr("SMOKE_BASE_URL", "http://localhost:8080")

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // generation can take a while, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func show(resp *http.Response, body []byte) {
	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		fmt.Println(string(body))
		return
	}
	prettyPrint(parsed)
}

func main() {
	color.Cyan("🚀 Starting Generation API Smoke Test\n")

	// 1. Health check
	color.Yellow("\n1. Health Check")
	resp, body, err := sendRequest("GET", "/health", nil)
	if err != nil {
		color.Red("Server unreachable: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	// 2. Model configs
	color.Yellow("\n2. Model Configs")
	resp, body, err = sendRequest("GET", "/model-configs", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	// 3. Notes from a raw prompt
	color.Yellow("\n3. Generate Notes (prompt only)")
	resp, body, err = sendRequest("POST", "/generate/notes", map[string]interface{}{
		"prompt": "Photosynthesis converts light energy into chemical energy stored in glucose.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	notes := "Photosynthesis occurs in chloroplasts. Light reactions produce ATP and NADPH. The Calvin cycle fixes carbon dioxide into glucose."

	// 4. Quiz from notes
	color.Yellow("\n4. Generate Quiz")
	resp, body, err = sendRequest("POST", "/generate/quiz", map[string]interface{}{"notes": notes})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	// 5. Flashcards from notes
	color.Yellow("\n5. Generate Flashcards")
	resp, body, err = sendRequest("POST", "/generate/flashcards", map[string]interface{}{"notes": notes})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	// 6. Summary from notes
	color.Yellow("\n6. Generate Summary")
	resp, body, err = sendRequest("POST", "/generate/summary", map[string]interface{}{"notes": notes})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	// 7. Intent detection
	color.Yellow("\n7. Detect Intent")
	resp, body, err = sendRequest("POST", "/detect-intent", map[string]interface{}{
		"message": "please take notes on this lecture",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	// 8. Validation error path
	color.Yellow("\n8. Quiz Without Notes (expect 400)")
	resp, body, err = sendRequest("POST", "/generate/quiz", map[string]interface{}{})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	show(resp, body)

	color.Cyan("\n✅ Smoke test complete")
}
