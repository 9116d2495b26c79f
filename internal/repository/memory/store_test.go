package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_RollbackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Customers().WithinTx(ctx, func(tx repository.CustomerTx) error {
		_, err := tx.Create(ctx, model.Customer{Identification: "1001"})
		require.NoError(t, err)
		require.NoError(t, tx.UpsertVerificationToken(ctx, model.VerificationToken{Email: "a@b.c", Token: "t1"}))
		return errors.New("abort")
	})
	require.Error(t, err)

	assert.Empty(t, store.CustomerRows())
	assert.Empty(t, store.TokenRows())
}

func TestCustomerRepository_CommitAndUpsert(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for _, token := range []string{"t1", "t2"} {
		err := store.Customers().WithinTx(ctx, func(tx repository.CustomerTx) error {
			return tx.UpsertVerificationToken(ctx, model.VerificationToken{Email: "a@b.c", Token: token})
		})
		require.NoError(t, err)
	}

	rows := store.TokenRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "t2", rows[0].Token)
}

func TestCustomerRepository_DuplicateInsert(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.Customers().WithinTx(ctx, func(tx repository.CustomerTx) error {
		if _, err := tx.Create(ctx, model.Customer{Identification: "1001"}); err != nil {
			return err
		}
		_, err := tx.Create(ctx, model.Customer{Identification: "1001"})
		return err
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Empty(t, store.CustomerRows())
}

func TestStore_FailOn(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	store.FailOn(OpCreateCard, boom)
	_, err := store.Cards().Create(ctx, model.Card{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.CardRows())

	store.FailOn(OpCreateCard, nil)
	id, err := store.Cards().Create(ctx, model.Card{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestCustomerRepository_OpenTxDoesNotBlockOtherWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	inTx := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- store.Customers().WithinTx(ctx, func(tx repository.CustomerTx) error {
			if _, err := tx.Create(ctx, model.Customer{Identification: "1001"}); err != nil {
				return err
			}
			close(inTx)
			<-release
			return nil
		})
	}()
	<-inTx

	petDone := make(chan error, 1)
	go func() {
		_, err := store.Pets().Create(ctx, model.Pet{Name: "Toby"})
		petDone <- err
	}()

	select {
	case err := <-petDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("pet write blocked by an open customer transaction")
	}
	assert.Len(t, store.PetRows(), 1)
	assert.Empty(t, store.CustomerRows())

	close(release)
	require.NoError(t, <-txDone)
	assert.Len(t, store.CustomerRows(), 1)
}
