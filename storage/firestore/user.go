package firestoredb

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/greencampus/greencampus/core/user"
)

type userRepository struct {
	client *firestore.Client
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(client *firestore.Client) user.Repository {
	return &userRepository{client: client}
}

func (repo *userRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(usersCollection)
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if _, err := repo.collection().Doc(usr.ID).Create(ctx, usr); err != nil {
		return user.User{}, errors.Wrap(err, "creating user document")
	}
	return usr, nil
}

func (repo *userRepository) collect(iter *firestore.DocumentIterator) ([]user.User, error) {
	defer iter.Stop()
	users := make([]user.User, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterating users")
		}
		var usr user.User
		if err := doc.DataTo(&usr); err != nil {
			return nil, errors.Wrapf(err, "decoding user %s", doc.Ref.ID)
		}
		usr.ID = doc.Ref.ID
		users = append(users, usr)
	}
	return users, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	return repo.collect(repo.collection().Documents(ctx))
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if id == "" {
		return user.User{}, user.ErrNotFound
	}
	var usr user.User
	if err := getDoc(ctx, repo.collection().Doc(id), &usr, user.ErrNotFound); err != nil {
		return user.User{}, err
	}
	usr.ID = id
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	users, err := repo.collect(repo.collection().Where("email", "==", email).Limit(1).Documents(ctx))
	if err != nil {
		return user.User{}, err
	}
	if len(users) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return users[0], nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := updateDoc(ctx, repo.client, repo.collection().Doc(usr.ID), usr, user.ErrNotFound); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return user.ErrNotFound
	}
	return deleteDoc(ctx, repo.collection().Doc(id), user.ErrNotFound)
}
