package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/internal/utils"
)

const (
	imagePrompt = "あなたはフィットネス栄養士です。この画像を分析してください。それが食べ物かどうか判定してください。" +
		"生の食材、単純な調理品、複雑な料理など、あらゆる種類の食品を認識してください。" +
		"表示されている部分の合計栄養成分（カロリー、タンパク質、脂質、炭水化物、糖質）を推定してください。" +
		"ジャンクフードやお菓子、添加物の多そうな加工食品の場合は isUnhealthy を true にしてください。" +
		"必ず次のフィールドだけを持つJSONオブジェクトのみを返してください: " +
		"isFood (boolean), name (string, 日本語), calories (number), protein_g (number), fat_g (number), " +
		"carbs_g (number), sugar_g (number), isUnhealthy (boolean), reasoning (string, 日本語のコーチ口調)。" +
		"説明文やマークダウンは含めないでください。"

	pdfPrompt = "あなたはフィットネス栄養士です。このドキュメント（メニュー、レシピ、食事リスト）を分析し、" +
		"食品を特定して栄養価を要約してください。" +
		"必ず次のフィールドだけを持つJSONオブジェクトのみを返してください: " +
		"isFood (boolean), name (string, 日本語), calories (number), protein_g (number), fat_g (number), " +
		"carbs_g (number), sugar_g (number), isUnhealthy (boolean), reasoning (string, 日本語のコーチ口調)。" +
		"説明文やマークダウンは含めないでください。"
)

type (
	AnalysisService interface {
		AnalyzeFood(ctx context.Context, data []byte, mimeType string) (domain.FoodAnalysis, error)
	}

	geminiService struct {
		httpClient *http.Client
	}
)

func NewAnalysisService() AnalysisService {
	return &geminiService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *geminiService) AnalyzeFood(ctx context.Context, data []byte, mimeType string) (domain.FoodAnalysis, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return domain.FoodAnalysis{}, domain.ErrMissingGeminiKey
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}

	promptText := imagePrompt
	if mimeType == "application/pdf" {
		promptText = pdfPrompt
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(data),
						},
					},
					{
						"text": promptText,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":        0.4,
			"response_mime_type": "application/json",
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.FoodAnalysis{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.FoodAnalysis{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.FoodAnalysis{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.FoodAnalysis{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return domain.FoodAnalysis{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.FoodAnalysis{}, domain.ErrEmptyAnalysisBody
	}

	return parseAnalysisText(geminiResp.Candidates[0].Content.Parts[0].Text)
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseAnalysisText extracts the analysis JSON from the model's reply, which
// sometimes arrives wrapped in markdown fences or surrounded by commentary.
func parseAnalysisText(responseText string) (domain.FoodAnalysis, error) {
	if matches := jsonObjectPattern.FindString(responseText); matches != "" {
		responseText = matches
	}

	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}
	responseText = strings.TrimSpace(responseText)

	var analysis domain.FoodAnalysis
	if err := json.Unmarshal([]byte(responseText), &analysis); err != nil {
		return domain.FoodAnalysis{}, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}

	if analysis.IsFood && strings.TrimSpace(analysis.Name) == "" {
		analysis.Name = "不明な食べ物"
	}
	return analysis, nil
}
