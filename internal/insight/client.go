// Package insight wraps the AI text collaborator. Every call is
// best-effort: failures degrade to the input text or a placeholder and are
// never surfaced to the scheduling core.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	flashModel     = "gemini-2.5-flash"
	proModel       = "gemini-3-pro-preview"

	insightFallback = "The unconscious is structured like a language."
	reportFallback  = "Report generation is unavailable right now."
)

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Session is one clinical-note entry fed into a report.
type Session struct {
	Date  string
	Notes string
}

// ReportKind selects the report voice.
type ReportKind string

const (
	ReportTechnical   ReportKind = "technical"   // formal, for other professionals
	ReportSupervision ReportKind = "supervision" // case-supervision mentoring
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a client. An empty apiKey disables remote calls entirely;
// every method then returns its fallback immediately.
func New(apiKey string) *Client {
	return NewWithEndpoint(apiKey, defaultBaseURL)
}

func NewWithEndpoint(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// RefineNotes rewrites raw clinical notes into a professional register.
// On any failure the raw notes come back unchanged.
func (c *Client) RefineNotes(ctx context.Context, rawNotes, patientName string) string {
	prompt := fmt.Sprintf(`You are an assistant to a clinical psychologist.
Rewrite and organize the clinical notes below so they are professional,
concise and clear, keeping an appropriate clinical tone. Use bullet points
if helpful.

Patient: %s
Raw notes: %q

Return only the rewritten text, with no introduction or closing remarks.`,
		patientName, rawNotes)

	out, err := c.generate(ctx, flashModel, prompt)
	if err != nil {
		log.Printf("insight: refine failed, returning raw notes: %v", err)
		return rawNotes
	}
	return out
}

var insightTopics = []string{
	"Recommend an essential book or seminar by Lacan (or well-known commentators such as Fink or Miller). Give the title and, in one sentence, why a clinician should read it today.",
	"Pick one dense Lacanian concept (objet a, jouissance, the Name-of-the-Father, the Real, the sinthome) and explain it poetically in at most two sentences.",
	"Quote Jacques Lacan directly; make it striking. Follow the quote with a one-line reading of its use in the clinic.",
	"Suggest a specific topic for video study: give a search keyword and say what the clinician will learn from it.",
}

// DailyInsight produces a short study card for the sidebar.
func (c *Client) DailyInsight(ctx context.Context) string {
	topic := insightTopics[rand.Intn(len(insightTopics))]
	prompt := fmt.Sprintf(`Generate short, rich, surprising content for a daily
study card in a psychologist's practice tool.

Specific instruction: %s

Keep an erudite, psychoanalytic yet inspiring tone. At most 200 characters.`,
		topic)

	out, err := c.generate(ctx, proModel, prompt)
	if err != nil {
		return insightFallback
	}
	return out
}

// Report writes a patient report from the session history. The technical
// kind targets other professionals and medical records; the supervision
// kind reads as senior case supervision.
func (c *Client) Report(ctx context.Context, kind ReportKind, patientName string, sessions []Session) string {
	var lines []string
	for _, s := range sessions {
		lines = append(lines, fmt.Sprintf("- Date: %s\n  Notes: %s", s.Date, s.Notes))
	}
	history := strings.Join(lines, "\n\n")

	var prompt string
	switch kind {
	case ReportSupervision:
		prompt = fmt.Sprintf(`Act as a senior clinical supervisor
(Lacanian/Freudian orientation) reviewing the case of patient %q.
Analyze the clinical material below and give the therapist insights,
guidance and questions: what is heard in the patient's speech, the handling
of transference, points of resistance, and the direction of the treatment.

Session notes:
%s

Be theoretical but practical. Format the answer in clean Markdown.`,
			patientName, history)
	default:
		prompt = fmt.Sprintf(`Write a formal CLINICAL EVOLUTION REPORT about
patient %q for a psychiatrist, neurologist or official medical record.
Use technical, objective, impersonal language. Structure: identification
and summary of the demand; clinical evolution; diagnostic impressions;
conclusion and treatment plan.

Session notes:
%s

Format the answer in clean Markdown.`,
			patientName, history)
	}

	out, err := c.generate(ctx, proModel, prompt)
	if err != nil {
		log.Printf("insight: %s report failed: %v", kind, err)
		return reportFallback
	}
	return out
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no api key configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generateContent: status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generateContent: empty response")
	}
	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("generateContent: empty text")
	}
	return text, nil
}
