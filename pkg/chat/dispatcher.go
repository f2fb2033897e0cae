package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/dataset"
	"github.com/doctorew/pocket-morties/pkg/llm"
	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/metrics"
	"github.com/doctorew/pocket-morties/pkg/models"
	"github.com/doctorew/pocket-morties/pkg/prompts"
	"github.com/doctorew/pocket-morties/pkg/query"
)

// Fixed replies that do not depend on the dataset.
const (
	TopGuidance       = "Please specify a valid stat for top Morties (e.g., top Morties by baseatk)."
	BottomGuidance    = "Please specify a valid stat for bottom Morties (e.g., bottom Morties by basedef)."
	NotConfiguredText = "The completion service is not configured, so free-form questions cannot be answered. Try \"top Morties by baseatk\"."
	NoQueryText       = "I could not turn that request into a GraphQL query."
)

// JSONAnalysisCount is how many records the JSON analysis reports.
const JSONAnalysisCount = 5

// QueryExecutor runs a GraphQL query and returns the response envelope.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) (*models.GraphQLResponse, error)
}

// Response is the reply to one chat message.
type Response struct {
	Message     string             `json:"message"`
	GQLQuery    string             `json:"gqlQuery,omitempty"`
	GQLResponse any                `json:"gqlResponse,omitempty"`
	Data        *models.Connection `json:"data,omitempty"`
}

// Dispatcher executes classified intents against the dataset, the GraphQL
// executor and the completion service.
type Dispatcher struct {
	source    dataset.Source
	local     dataset.Source
	completer llm.Completer
	executor  QueryExecutor
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. local backs the JSON analysis and falls
// back to source when nil. completer may be nil when no completion service is
// configured.
func NewDispatcher(
	source dataset.Source,
	local dataset.Source,
	completer llm.Completer,
	executor QueryExecutor,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Dispatcher {
	if local == nil {
		local = source
	}
	return &Dispatcher{
		source:    source,
		local:     local,
		completer: completer,
		executor:  executor,
		metrics:   m,
		logger:    logger.Named("chat"),
	}
}

// Handle classifies text and executes the resulting intent.
func (d *Dispatcher) Handle(ctx context.Context, text string) (*Response, error) {
	intent := Classify(text)

	logging.WithContext(ctx, d.logger).Info("Chat request classified",
		zap.String("intent", intent.Kind()),
		zap.String("text", logging.TruncateString(text, logging.MaxQueryLogLength)))

	return d.Execute(ctx, intent)
}

// Execute runs one intent. Invalid stats produce a guidance message without
// touching the dataset; dataset, executor and completion failures are
// returned as errors.
func (d *Dispatcher) Execute(ctx context.Context, intent Intent) (*Response, error) {
	d.metrics.ObserveIntent(intent.Kind())

	switch in := intent.(type) {
	case GraphQLPassthrough:
		return d.passthrough(ctx, in)
	case JSONAnalysis:
		return d.jsonAnalysis(ctx)
	case TopByStat:
		return d.topByStat(ctx, in)
	case BottomByStat:
		return d.bottomByStat(ctx, in)
	case FreeformCompletion:
		return d.freeform(ctx, in)
	default:
		return nil, fmt.Errorf("unsupported intent %T", intent)
	}
}

func (d *Dispatcher) passthrough(ctx context.Context, in GraphQLPassthrough) (*Response, error) {
	logger := logging.WithContext(ctx, d.logger)

	gqlQuery := in.Seed
	if !looksLikeQuery(gqlQuery) {
		if d.completer == nil {
			return &Response{Message: NotConfiguredText}, nil
		}
		generated, err := d.generateQuery(ctx, in.Seed)
		if err != nil {
			return nil, err
		}
		extracted, err := llm.ExtractGraphQLQuery(generated)
		if err != nil {
			logger.Warn("Completion did not contain a GraphQL query",
				zap.String("output", logging.TruncateString(generated, logging.MaxQueryLogLength)))
			return &Response{Message: NoQueryText, GQLQuery: generated}, nil
		}
		gqlQuery = RewriteQuery(in.Seed, extracted)
	}

	logger.Debug("Executing GraphQL passthrough", zap.String("query", logging.SanitizeQuery(gqlQuery)))

	resp, err := d.executor.Execute(ctx, gqlQuery)
	if err != nil {
		return nil, fmt.Errorf("execute GraphQL query: %w", err)
	}

	assessment := AssessResponse(resp)
	return &Response{
		Message:     summarize(assessment),
		GQLQuery:    gqlQuery,
		GQLResponse: assessment,
	}, nil
}

func (d *Dispatcher) generateQuery(ctx context.Context, seed string) (string, error) {
	out, err := llm.Collect(d.completer.StreamCompletion(ctx, prompts.BuildQueryGenerationPrompt(seed), seed))
	if err != nil {
		d.logCompletionFailure(ctx, "query_generation", err)
		return "", fmt.Errorf("generate GraphQL query: %w", err)
	}
	return out, nil
}

func (d *Dispatcher) jsonAnalysis(ctx context.Context) (*Response, error) {
	records, err := d.local.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("read local dataset: %w", err)
	}

	conn, err := query.SortAndPage(records, models.SortKeyBaseAtk.String(), models.PageRequest{First: models.IntPtr(JSONAnalysisCount)})
	if err != nil {
		return nil, err
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("The top %d Morties with the highest base attack are:\n\n", JSONAnalysisCount))
	for i, e := range conn.Edges {
		msg.WriteString(fmt.Sprintf("%d. %s (Base Attack: %d)\n", i+1, e.Node.Name, e.Node.BaseAtk))
	}
	return &Response{Message: msg.String(), Data: conn}, nil
}

func (d *Dispatcher) topByStat(ctx context.Context, in TopByStat) (*Response, error) {
	key, err := models.ParseSortKey(in.Stat)
	if err != nil {
		return &Response{Message: TopGuidance}, nil
	}

	conn, err := d.sorted(ctx, key, models.PageRequest{First: models.IntPtr(in.Count)})
	if err != nil {
		return nil, err
	}
	return &Response{
		Message: fmt.Sprintf("Here are the top Morties by %s:\n%s", key, formatList(conn, key)),
		Data:    conn,
	}, nil
}

func (d *Dispatcher) bottomByStat(ctx context.Context, in BottomByStat) (*Response, error) {
	key, err := models.ParseSortKey(in.Stat)
	if err != nil {
		return &Response{Message: BottomGuidance}, nil
	}

	conn, err := d.sorted(ctx, key, models.PageRequest{Last: models.IntPtr(in.Count)})
	if err != nil {
		return nil, err
	}

	noun := "Morty"
	if in.Count != 1 {
		noun = inflection.Plural(noun)
	}
	return &Response{
		Message: fmt.Sprintf("Here are the bottom %d %s by %s:\n%s", in.Count, noun, key, formatList(conn, key)),
		Data:    conn,
	}, nil
}

func (d *Dispatcher) sorted(ctx context.Context, key models.SortKey, page models.PageRequest) (*models.Connection, error) {
	records, err := d.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	return query.SortAndPage(records, key.String(), page)
}

func (d *Dispatcher) freeform(ctx context.Context, in FreeformCompletion) (*Response, error) {
	if d.completer == nil {
		return &Response{Message: NotConfiguredText}, nil
	}

	out, err := llm.Collect(d.completer.StreamCompletion(ctx, prompts.BuildFreeformSystemPrompt(), in.Text))
	if err != nil {
		d.logCompletionFailure(ctx, "freeform", err)
		return nil, fmt.Errorf("freeform completion: %w", err)
	}
	return &Response{Message: out}, nil
}

func (d *Dispatcher) logCompletionFailure(ctx context.Context, purpose string, err error) {
	logging.WithContext(ctx, d.logger).Error("Completion failed",
		zap.String("purpose", purpose),
		zap.String("provider", d.completer.Provider()),
		zap.String("error_type", string(llm.GetErrorType(err))),
		zap.String("error", logging.SanitizeError(err)))
}

func formatList(conn *models.Connection, key models.SortKey) string {
	var b strings.Builder
	for i, e := range conn.Edges {
		b.WriteString(fmt.Sprintf("%d. %s (%s: %s)\n", i+1, e.Node.Name, key, key.Value(&e.Node)))
	}
	return b.String()
}

// queryDocumentPattern matches a seed that already opens a selection set,
// either bare or after a query operation header.
var queryDocumentPattern = regexp.MustCompile(`^(?i)(query(\s+\w+)?\s*(\([^)]*\))?\s*)?\{`)

func looksLikeQuery(seed string) bool {
	return queryDocumentPattern.MatchString(strings.TrimSpace(seed))
}
