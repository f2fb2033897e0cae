package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/logging"
)

// maxArgumentLogLength caps string tool arguments in the logs.
const maxArgumentLogLength = 200

var sensitiveArgumentKeys = []string{"password", "secret", "token", "key", "credential"}

// MCPRequestLogger logs MCP JSON-RPC calls: the method, the tool name with
// its arguments, and whether the call failed. Tool failures reported in the
// result (isError) are logged like JSON-RPC errors.
// Pass nil logger to disable logging.
func MCPRequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logger == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logging.WithContext(r.Context(), logger)

			bodyBytes, err := io.ReadAll(r.Body)
			if err != nil {
				reqLogger.Error("Failed to read MCP request body", zap.Error(err))
				http.Error(w, "failed to read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			// Not every body is a single JSON-RPC call; log what can be parsed.
			var call rpcCall
			_ = json.Unmarshal(bodyBytes, &call)

			tool := call.Params.Name
			reqLogger.Debug("MCP request",
				zap.String("method", call.Method),
				zap.String("tool", tool),
				zap.Any("arguments", sanitizeArguments(call.Params.Arguments)),
			)

			recorder := &bodyRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)

			var reply rpcReply
			if err := json.Unmarshal(recorder.body.Bytes(), &reply); err != nil {
				reqLogger.Debug("MCP response not JSON", zap.String("tool", tool), zap.Duration("duration", duration))
				return
			}

			switch {
			case reply.Error != nil:
				reqLogger.Debug("MCP response error",
					zap.String("tool", tool),
					zap.Int("error_code", reply.Error.Code),
					zap.String("error_message", reply.Error.Message),
					zap.Duration("duration", duration),
				)
			case reply.Result.IsError:
				reqLogger.Debug("MCP tool error",
					zap.String("tool", tool),
					zap.String("error_message", reply.Result.firstText()),
					zap.Duration("duration", duration),
				)
			default:
				reqLogger.Debug("MCP response success",
					zap.String("tool", tool),
					zap.Duration("duration", duration),
				)
			}
		})
	}
}

type rpcCall struct {
	Method string `json:"method"`
	Params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"params"`
}

type rpcReply struct {
	Result rpcResult `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type rpcResult struct {
	IsError bool `json:"isError"`
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (r rpcResult) firstText() string {
	if len(r.Content) == 0 {
		return ""
	}
	return logging.TruncateString(r.Content[0].Text, maxArgumentLogLength)
}

// bodyRecorder copies the response body while passing it through.
type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// sanitizeArguments redacts sensitive fields and truncates long values.
func sanitizeArguments(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}

	result := make(map[string]any, len(args))
	for k, v := range args {
		lowerKey := strings.ToLower(k)
		if containsAny(lowerKey, sensitiveArgumentKeys) {
			result[k] = logging.RedactedText
			continue
		}
		if str, ok := v.(string); ok {
			result[k] = logging.TruncateString(str, maxArgumentLogLength)
			continue
		}
		result[k] = v
	}
	return result
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
