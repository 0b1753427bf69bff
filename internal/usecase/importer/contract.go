package importer

import (
	"context"

	domper "github.com/relief-cloud/persondex/internal/domain/person"
	personuc "github.com/relief-cloud/persondex/internal/usecase/person"
)

// PersonCreator creates person records, one per accepted CSV row.
type PersonCreator interface {
	Create(ctx context.Context, repoName string, in personuc.CreateInput) (domper.Person, error)
}
