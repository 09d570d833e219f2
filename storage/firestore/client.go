// Package firestoredb implements the repositories on Cloud Firestore.
package firestoredb

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/greencampus/greencampus/core"
)

// Collections
const (
	usersCollection   = "users"
	recordsCollection = "resourceUsages"
	goalsCollection   = "sustainabilityGoals"
)

// credentialsJSON returns the service account JSON, from base64 first and then from a file.
// Nil means application default credentials.
func credentialsJSON(conf *core.Config) ([]byte, error) {
	if conf.Firestore.CredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(conf.Firestore.CredsBase64)
		if err != nil {
			return nil, errors.Wrap(err, "decoding firestore credentials")
		}
		return decoded, nil
	}
	if conf.Firestore.CredsFile != "" {
		data, err := os.ReadFile(conf.Firestore.CredsFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading firestore credentials")
		}
		return data, nil
	}
	return nil, nil
}

// Open creates a Firestore client and checks that the project can be reached.
func Open(ctx context.Context, conf *core.Config) (*firestore.Client, error) {
	creds, err := credentialsJSON(conf)
	if err != nil {
		return nil, err
	}
	var opts []option.ClientOption
	if creds != nil {
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	client, err := firestore.NewClient(ctx, conf.Firestore.ProjectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating firestore client")
	}
	if err = Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging firestore")
	}
	return client, nil
}

// Ping performs a lightweight check by attempting to iterate collections.
func Ping(ctx context.Context, client *firestore.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := client.Collections(ctx)
	_, err := iter.Next()
	if err == iterator.Done {
		return nil
	}
	return err
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// getDoc fetches a document, mapping a missing one to `notFound`.
func getDoc(ctx context.Context, ref *firestore.DocumentRef, dst interface{}, notFound error) error {
	snap, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return notFound
		}
		return errors.Wrapf(err, "getting %s", ref.Path)
	}
	if err = snap.DataTo(dst); err != nil {
		return errors.Wrapf(err, "decoding %s", ref.Path)
	}
	return nil
}

// deleteDoc deletes an existing document, mapping a missing one to `notFound`.
func deleteDoc(ctx context.Context, ref *firestore.DocumentRef, notFound error) error {
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return notFound
		}
		return errors.Wrapf(err, "deleting %s", ref.Path)
	}
	return nil
}

// updateDoc replaces an existing document, mapping a missing one to `notFound`.
func updateDoc(ctx context.Context, client *firestore.Client, ref *firestore.DocumentRef, data interface{}, notFound error) error {
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, data)
	})
	if err != nil {
		if isNotFound(err) {
			return notFound
		}
		return errors.Wrapf(err, "updating %s", ref.Path)
	}
	return nil
}
