package charge

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sagehenstudio/cap-one-wave/internal/api/wave"
)

// Categorizer picks the Wave expense account for a payee. A miss (ok ==
// false) means the mapper falls back to the configured default expense
// account.
type Categorizer interface {
	ExpenseAccount(payee string) (wave.AccountID, bool)
}

// CategoryMap is a payee -> expense account lookup with lowercase keys.
// Ships empty by default; populating it is an operator choice, worth the
// trouble for frequent payees to save data entry later.
type CategoryMap map[string]wave.AccountID

var _ Categorizer = (CategoryMap)(nil)

func NewCategoryMap(entries map[string]wave.AccountID) CategoryMap {
	m := make(CategoryMap, len(entries))
	for payee, accountID := range entries {
		m[strings.ToLower(payee)] = accountID
	}

	return m
}

func (m CategoryMap) ExpenseAccount(payee string) (wave.AccountID, bool) {
	accountID, ok := m[strings.ToLower(payee)]
	return accountID, ok
}

// LoadCategoryMap reads a payee -> expense account ID mapping from a YAML
// file, e.g.:
//
//	verizon: QWNjb3VudDo...  # utilities account ID
func LoadCategoryMap(path string) (CategoryMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category map: %w", err)
	}

	var entries map[string]wave.AccountID
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse category map %s: %w", path, err)
	}

	return NewCategoryMap(entries), nil
}
