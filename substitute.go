package ctxzip

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/youssefsiam38/ctxzip/adapter"
	"github.com/youssefsiam38/ctxzip/storage"
	"github.com/youssefsiam38/ctxzip/types"
)

// readerGuidance is appended to every writer-path reference so the model
// knows how to get the content back.
const readerGuidance = "Use the read/search tools to inspect its contents."

// substituter rewrites individual tool-result parts, externalizing their
// payloads or re-describing reader-tool results.
type substituter struct {
	adapter   adapter.Adapter
	keys      *storage.KnownKeys
	serialize SerializeFunc
	readers   map[string]struct{}
	logger    Logger
}

// substitutePart returns a replacement for the given part, reporting
// whether it was changed. The input part is never mutated. A storage write
// failure is fatal for the whole compaction call.
func (s *substituter) substitutePart(ctx context.Context, part types.Part) (types.Part, bool, error) {
	if part.Type != types.PartToolResult || part.Output == nil {
		return part, false, nil
	}

	if _, isReader := s.readers[part.ToolName]; isReader && part.ToolName != "" {
		return s.substituteReaderPart(part), true, nil
	}

	return s.substituteWriterPart(ctx, part)
}

// substituteReaderPart handles results of tools that themselves read from
// storage: the content already lives somewhere, so it is re-described
// rather than re-persisted.
func (s *substituter) substituteReaderPart(part types.Part) types.Part {
	fileName, key, storageID := readerMetadata(part.Output)

	var display string
	if storageID != "" && key != "" {
		display = fmt.Sprintf("Read from storage: %s. Key: %s",
			adapter.FormatPath(storageID, key), key)
		s.keys.Register(storageID, key)
	} else {
		if fileName == "" {
			fileName = "<unknown>"
		}
		display = "Read from file: " + fileName
	}

	replaced := part
	replaced.Output = types.TextOutput(display)
	return replaced
}

// substituteWriterPart persists the part's payload under a fresh key and
// replaces the output with a reference to it. Parts whose payload cannot
// be derived, or derives to empty, are returned unchanged.
func (s *substituter) substituteWriterPart(ctx context.Context, part types.Part) (types.Part, bool, error) {
	content, err := s.contentToPersist(part.Output)
	if err != nil {
		return part, false, NewCompactError("Serialize", err).
			WithContext("tool", part.ToolName)
	}
	if content == "" {
		return part, false, nil
	}

	name := uuid.NewString() + ".txt"
	key := s.adapter.ResolveKey(name)

	_, err = s.adapter.Write(ctx, adapter.WriteParams{
		Key:         key,
		Body:        []byte(content),
		ContentType: "text/plain",
	})
	if err != nil {
		return part, false, NewCompactError("Write", fmt.Errorf("%w: %v", ErrStorageWrite, err)).
			WithContext("key", key).
			WithContext("tool", part.ToolName)
	}

	identity := s.adapter.Identity()
	prefix := "Written to storage"
	if strings.HasPrefix(identity, "file:") {
		prefix = "Written to file"
	}

	display := fmt.Sprintf("%s: %s. Key: %s. %s",
		prefix, adapter.FormatPath(identity, key), key, readerGuidance)

	s.keys.Register(identity, key)
	s.logger.Debug("tool result externalized",
		"tool", part.ToolName,
		"key", key,
		"bytes", len(content),
	)

	replaced := part
	replaced.Output = types.TextOutput(display)
	return replaced, true, nil
}

// contentToPersist derives the string payload of a tool-result output.
// An empty return with nil error means the part should be left unchanged:
// either the output shape is not persistable or its content is empty.
func (s *substituter) contentToPersist(out *types.Output) (string, error) {
	switch out.Type {
	case types.OutputJSON:
		if out.Value == nil {
			return "", nil
		}
		if str, ok := out.Value.(string); ok {
			return str, nil
		}
		return s.serialize(out.Value)

	case types.OutputText:
		return out.Text, nil

	default:
		return "", nil
	}
}

// readerMetadata extracts the fileName, key, and storage identity a reader
// tool reported in its output. For json outputs these come from the value
// mapping; for opaque outputs they are read from the output's own fields.
func readerMetadata(out *types.Output) (fileName, key, storageID string) {
	if out.Type == types.OutputJSON {
		if value, ok := out.Value.(map[string]any); ok {
			fileName, _ = value["fileName"].(string)
			key, _ = value["key"].(string)
			storageID, _ = value["storage"].(string)
		}
		return fileName, key, storageID
	}

	if raw := out.Raw(); raw != nil {
		fileName = gjson.GetBytes(raw, "fileName").String()
		key = gjson.GetBytes(raw, "key").String()
		storageID = gjson.GetBytes(raw, "storage").String()
	}
	return fileName, key, storageID
}
