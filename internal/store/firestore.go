package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreStore implements Store on top of a Firestore client.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, path string) (*Document, bool, error) {
	snap, err := s.client.Doc(path).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", path, err)
	}
	if !snap.Exists() {
		return nil, false, nil
	}
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, true, nil
}

func (s *FirestoreStore) Set(ctx context.Context, path string, data map[string]any, merge bool) error {
	var err error
	if merge {
		_, err = s.client.Doc(path).Set(ctx, data, firestore.MergeAll)
	} else {
		_, err = s.client.Doc(path).Set(ctx, data)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Create(ctx context.Context, path string, data map[string]any) error {
	if _, err := s.client.Doc(path).Create(ctx, data); err != nil {
		// Keep the original error unwrapped in the chain so callers can
		// classify permission-denied vs already-exists.
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, path string, data map[string]any) error {
	updates := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}
	if _, err := s.client.Doc(path).Update(ctx, updates); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, path string) error {
	if _, err := s.client.Doc(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("add to %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	q := s.client.Collection(collection).Query
	if orderBy != "" {
		dir := firestore.Asc
		if desc {
			dir = firestore.Desc
		}
		q = q.OrderBy(orderBy, dir)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var docs []Document
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}
