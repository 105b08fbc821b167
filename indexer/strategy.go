package indexer

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/stryukovsky/go-evm-indexer/indexer/abiword"
	"github.com/stryukovsky/go-evm-indexer/persist"
)

// payloadTopics is the fixed-length triple of optional topic-filter slots
// for topic positions 1 (sender), 2 (recipient), 3 (unused here; reserved).
// A nil slot means "unconstrained".
type payloadTopics [3][]common.Hash

// strategy translates an indexer's strategy configuration into the 3-slot
// topic filter applied to every log query it issues.
type strategy interface {
	payloadTopics(params json.RawMessage) (payloadTopics, error)
}

type tokenScanStrategy struct{}

func (tokenScanStrategy) payloadTopics(json.RawMessage) (payloadTopics, error) {
	return payloadTopics{}, nil
}

type recipientStrategy struct{}

func (recipientStrategy) payloadTopics(params json.RawMessage) (payloadTopics, error) {
	word, err := addressWordFromParams(params, "recipient")
	if err != nil {
		return payloadTopics{}, err
	}
	return payloadTopics{nil, {word}, nil}, nil
}

type senderStrategy struct{}

func (senderStrategy) payloadTopics(params json.RawMessage) (payloadTopics, error) {
	word, err := addressWordFromParams(params, "sender")
	if err != nil {
		return payloadTopics{}, err
	}
	return payloadTopics{{word}, nil, nil}, nil
}

// addressWordFromParams extracts the given string key from the strategy's
// opaque JSON params and zero-pads it to a 32-byte topic word. Unknown keys
// elsewhere in the payload are ignored.
func addressWordFromParams(params json.RawMessage, key string) (common.Hash, error) {
	if len(params) == 0 {
		return common.Hash{}, persist.Errorf("expected strategy JSON containing %q, found none", key)
	}
	var fields map[string]any
	if err := json.Unmarshal(params, &fields); err != nil {
		return common.Hash{}, persist.Errorf("parsing strategy JSON: %s", err)
	}
	raw, ok := fields[key]
	if !ok {
		return common.Hash{}, persist.Errorf("expected key %q containing address not found", key)
	}
	address, ok := raw.(string)
	if !ok {
		return common.Hash{}, persist.Errorf("expected %q value to be a string", key)
	}
	word, err := abiword.ParseHexToWord(address)
	if err != nil {
		return common.Hash{}, persist.Errorf("parsing %q as address: %s", key, err)
	}
	return word, nil
}

// buildStrategy selects the strategy implementation named by tag.
func buildStrategy(tag persist.StrategyTag) (strategy, error) {
	switch tag {
	case persist.StrategyRecipient:
		return recipientStrategy{}, nil
	case persist.StrategySender:
		return senderStrategy{}, nil
	case persist.StrategyTokenScan:
		return tokenScanStrategy{}, nil
	default:
		return nil, persist.Errorf("unknown indexer strategy %q", tag)
	}
}
