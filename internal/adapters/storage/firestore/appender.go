package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Appender implements domain.RowAppender over a Firestore collection,
// one document per row. Useful when the journal should live next to
// other GCP data instead of a spreadsheet.
type Appender struct {
	client     *firestore.Client
	collection string
}

func NewAppender(ctx context.Context, projectID, collection string) (*Appender, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore appender")
	}
	if collection == "" {
		collection = "journal"
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Appender{client: client, collection: collection}, nil
}

type rowDoc struct {
	Columns   []string  `firestore:"columns"`
	CreatedAt time.Time `firestore:"created_at"`
}

func (a *Appender) AppendRow(ctx context.Context, columns []string) error {
	doc := rowDoc{
		Columns:   append([]string(nil), columns...),
		CreatedAt: time.Now().UTC(),
	}

	_, err := a.client.Collection(a.collection).Doc(uuid.NewString()).Create(ctx, doc)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			// UUID collision is not a realistic case; treat as success.
			return nil
		}
		return fmt.Errorf("firestore append: %w", err)
	}
	return nil
}

func (a *Appender) Close() error {
	return a.client.Close()
}
