package geminisvc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
	"github.com/fineduca/backend/core/chat"
	"github.com/fineduca/backend/core/course"
	"github.com/fineduca/backend/core/profile"
)

const chatSystemInstruction = `Você é o "Edu", o assistente virtual inteligente e amigável do FinEduca.
Sua missão é ajudar os usuários a aprenderem sobre finanças, investimentos, impostos e orçamento.

Diretrizes:
1. Seja didático, paciente e use emojis para tornar a conversa leve.
2. Responda dúvidas financeiras de forma simples, evitando "economês" desnecessário.
3. Se o usuário perguntar sobre o app, explique que o FinEduca tem cursos, quizzes e metas.
4. Respostas concisas (máximo 3 parágrafos) são preferíveis para um chat.
5. Use formatação Markdown (negrito, listas) para facilitar a leitura.

Público-alvo: Desde iniciantes até pessoas com conhecimento intermediário.`

const imageStyleSuffix = ". Estilo de ilustração vetorial, limpo, profissional e motivacional, " +
	"usando cores vibrantes que combinem com um aplicativo de tecnologia financeira."

type service struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	client     *http.Client
	logger     core.Logger
}

var (
	_ course.Generator       = (*service)(nil)
	_ profile.ImageGenerator = (*service)(nil)
	_ chat.Assistant         = (*service)(nil)
)

func NewService(conf *core.Config, logger core.Logger) *service {
	return &service{
		apiKey:     conf.Gemini.APIKey,
		baseURL:    conf.Gemini.BaseURL,
		textModel:  conf.Gemini.TextModel,
		imageModel: conf.Gemini.ImageModel,
		client:     &http.Client{Timeout: 2 * time.Minute},
		logger:     logger,
	}
}

// ---------------------------------------------------------------------------
// wire types

type (
	part struct {
		Text string `json:"text,omitempty"`
	}

	content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}

	generationConfig struct {
		ResponseMimeType string          `json:"responseMimeType,omitempty"`
		ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	}

	generateContentRequest struct {
		Contents          []content         `json:"contents"`
		SystemInstruction *content          `json:"systemInstruction,omitempty"`
		GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
	}

	generateContentResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}

	predictRequest struct {
		Instances  []predictInstance `json:"instances"`
		Parameters predictParameters `json:"parameters"`
	}

	predictInstance struct {
		Prompt string `json:"prompt"`
	}

	predictParameters struct {
		SampleCount int    `json:"sampleCount"`
		AspectRatio string `json:"aspectRatio,omitempty"`
	}

	predictResponse struct {
		Predictions []struct {
			BytesBase64Encoded string `json:"bytesBase64Encoded"`
		} `json:"predictions"`
	}

	apiError struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
)

func (svc *service) post(ctx context.Context, model, action string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encoding request")
	}

	url := fmt.Sprintf("%s/models/%s:%s", svc.baseURL, model, action)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", svc.apiKey)

	resp, err := svc.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling content API")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading content API response")
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err = json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return errors.Errorf("content API: %s (%s)", apiErr.Error.Message, apiErr.Error.Status)
		}
		return errors.Errorf("content API: unexpected status %d", resp.StatusCode)
	}
	return errors.Wrap(json.Unmarshal(raw, out), "decoding content API response")
}

func (svc *service) generateText(ctx context.Context, req generateContentRequest) (string, error) {
	var resp generateContentResponse
	if err := svc.post(ctx, svc.textModel, "generateContent", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content generated")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// ---------------------------------------------------------------------------
// course generation

// courseSchema constrains the model output to the course structure; the
// decoder still validates the result before it is trusted.
var courseSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "description": {"type": "STRING", "description": "Uma breve descrição do curso (2-3 frases)."},
    "icon": {"type": "STRING", "description": "O ícone mais apropriado para o curso. Deve ser uma das seguintes opções: 'tax', 'investment', ou 'budget'."},
    "difficulty": {"type": "STRING", "description": "O nível de dificuldade do curso. Deve ser 'beginner' ou 'intermediate'."},
    "lessons": {
      "type": "ARRAY",
      "description": "Uma lista de 3 a 4 lições.",
      "items": {
        "type": "OBJECT",
        "properties": {
          "title": {"type": "STRING", "description": "O título da lição."},
          "content": {"type": "STRING", "description": "O conteúdo educacional da lição, formatado em markdown (parágrafos, listas). Mínimo de 3 parágrafos."},
          "quiz": {
            "type": "ARRAY",
            "description": "Um quiz com 3 perguntas de múltipla escolha para a lição.",
            "items": {
              "type": "OBJECT",
              "properties": {
                "question": {"type": "STRING", "description": "A pergunta do quiz."},
                "options": {"type": "ARRAY", "description": "Uma lista de 4 opções de resposta.", "items": {"type": "STRING"}},
                "correctAnswerIndex": {"type": "INTEGER", "description": "O índice (0-3) da resposta correta na lista de opções."}
              },
              "required": ["question", "options", "correctAnswerIndex"]
            }
          }
        },
        "required": ["title", "content", "quiz"]
      }
    }
  },
  "required": ["description", "lessons", "icon", "difficulty"]
}`)

func coursePrompt(topic string, difficulty course.Difficulty) string {
	return fmt.Sprintf(`Gere um curso de educação financeira sobre %q para o nível de dificuldade %q. O curso deve ser completo, didático e em português do Brasil.

Siga estritamente a estrutura JSON fornecida no schema.

- Para o nível 'beginner', use linguagem muito simples, analogias do dia a dia e foque nos conceitos mais fundamentais. As perguntas do quiz devem ser diretas.
- Para o nível 'intermediate', assuma que o usuário já conhece o básico. Introduza conceitos mais complexos, use terminologia técnica (com explicação) e apresente cenários mais elaborados. As perguntas do quiz podem exigir mais raciocínio.

O curso deve ter:
1. Uma 'description' curta e envolvente (2-3 sentenças).
2. O 'icon' mais relevante para o tópico. Escolha um entre: 'tax', 'investment', ou 'budget'.
3. O 'difficulty' correspondente ao solicitado ('beginner' ou 'intermediate').
4. Uma lista de 3 'lessons'.

Cada lição deve ter:
1. Um 'title' claro e conciso.
2. Um 'content' detalhado com pelo menos 3 parágrafos, explicando o tópico da lição. Use markdown para formatação (negrito, listas).
3. Um 'quiz' com exatamente 3 perguntas de múltipla escolha.

Cada questão do quiz deve ter:
1. A 'question' em si.
2. Uma lista de 4 'options'.
3. O 'correctAnswerIndex' (de 0 a 3) indicando a resposta correta.

O conteúdo deve ser prático e fácil de entender para o público-alvo.`, topic, difficulty)
}

func (svc *service) GenerateCourse(ctx context.Context, topic string, difficulty course.Difficulty) (course.GeneratedContent, error) {
	req := generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: coursePrompt(topic, difficulty)}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   courseSchema,
		},
	}
	text, err := svc.generateText(ctx, req)
	if err != nil {
		return course.GeneratedContent{}, err
	}

	var gc course.GeneratedContent
	if err = json.Unmarshal([]byte(text), &gc); err != nil {
		return course.GeneratedContent{}, errors.Wrap(err, "decoding generated course")
	}
	if err = gc.Validate(); err != nil {
		return course.GeneratedContent{}, errors.Wrap(err, "invalid generated course")
	}
	return gc, nil
}

// ---------------------------------------------------------------------------
// chat

func (svc *service) Chat(ctx context.Context, history []chat.Message, message string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, content{Role: string(msg.Role), Parts: []part{{Text: msg.Text}}})
	}
	contents = append(contents, content{Role: string(chat.RoleUser), Parts: []part{{Text: message}}})

	req := generateContentRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: chatSystemInstruction}}},
	}
	return svc.generateText(ctx, req)
}

// ---------------------------------------------------------------------------
// images

func (svc *service) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	req := predictRequest{
		Instances:  []predictInstance{{Prompt: prompt + imageStyleSuffix}},
		Parameters: predictParameters{SampleCount: 1, AspectRatio: "16:9"},
	}
	var resp predictResponse
	if err := svc.post(ctx, svc.imageModel, "predict", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return nil, errors.New("no image generated")
	}
	raw, err := base64.StdEncoding.DecodeString(resp.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, errors.Wrap(err, "decoding generated image")
	}
	return raw, nil
}
