/* survivor_status_test.go
 * Contains unit tests for survivor_status.go
 * Authors: Zachary Bower
 */

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testCorrection() Correction {
	return Correction{
		ID:    "11111111-2222-3333-4444-555555555555",
		Actor: "audit-engine",
		At:    1757300000,
		Note:  "verified incorrect_elimination_week",
	}
}

func TestFetchStatusRecord_Found(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns stored status record", func(mt *mtest.T) {
		store := newTestStore(mt)

		first := mtest.CreateCursorResponse(1, "test.survivor_status", mtest.FirstBatch, bson.D{
			{Key: "participantid", Value: "user1"},
			{Key: "pool", Value: "test_pool_2025"},
			{Key: "eliminated", Value: true},
			{Key: "eliminated_week", Value: 3},
			{Key: "elimination_reason", Value: "Cowboys lost in week 3"},
		})
		getMore := mtest.CreateCursorResponse(0, "test.survivor_status", mtest.NextBatch)
		mt.AddMockResponses(first, getMore)

		record, err := store.FetchStatusRecord("user1")
		assert.NoError(t, err)
		assert.True(t, record.Eliminated)
		assert.Equal(t, 3, record.EliminatedWeek)
	})
}

func TestFetchStatusRecord_NotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("passes through ErrNoDocuments", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.survivor_status", mtest.FirstBatch))

		_, err := store.FetchStatusRecord("missing")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})
}

func TestClearElimination_ClearsEliminatedRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("clears flag and elimination metadata", func(mt *mtest.T) {
		store := newTestStore(mt)

		first := mtest.CreateCursorResponse(1, "test.survivor_status", mtest.FirstBatch, bson.D{
			{Key: "participantid", Value: "user1"},
			{Key: "pool", Value: "test_pool_2025"},
			{Key: "eliminated", Value: true},
			{Key: "eliminated_week", Value: 4},
		})
		getMore := mtest.CreateCursorResponse(0, "test.survivor_status", mtest.NextBatch)
		updateSuccess := bson.D{
			{Key: "ok", Value: 1},
			{Key: "nModified", Value: 1},
		}
		mt.AddMockResponses(first, getMore, updateSuccess)

		err := store.ClearElimination("user1", testCorrection())
		assert.NoError(t, err)
	})
}

func TestClearElimination_AlreadyAliveIsNoop(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second run makes no write", func(mt *mtest.T) {
		store := newTestStore(mt)

		// Record exists but is not eliminated, only the lookup should run
		first := mtest.CreateCursorResponse(1, "test.survivor_status", mtest.FirstBatch, bson.D{
			{Key: "participantid", Value: "user1"},
			{Key: "pool", Value: "test_pool_2025"},
			{Key: "eliminated", Value: false},
		})
		getMore := mtest.CreateCursorResponse(0, "test.survivor_status", mtest.NextBatch)
		mt.AddMockResponses(first, getMore)

		err := store.ClearElimination("user1", testCorrection())
		assert.NoError(t, err)
	})
}

func TestClearElimination_MissingRecordIsNoop(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no record means nothing to clear", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.survivor_status", mtest.FirstBatch))

		err := store.ClearElimination("missing", testCorrection())
		assert.NoError(t, err)
	})
}

func TestMarkEliminated_InsertsNewRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts when no record exists", func(mt *mtest.T) {
		store := newTestStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.survivor_status", mtest.FirstBatch))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := store.MarkEliminated("user1", 2, "TeamY", testCorrection())
		assert.NoError(t, err)
	})
}

func TestMarkEliminated_SameWeekIsNoop(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("already eliminated in the computed week makes no write", func(mt *mtest.T) {
		store := newTestStore(mt)

		first := mtest.CreateCursorResponse(1, "test.survivor_status", mtest.FirstBatch, bson.D{
			{Key: "participantid", Value: "user1"},
			{Key: "pool", Value: "test_pool_2025"},
			{Key: "eliminated", Value: true},
			{Key: "eliminated_week", Value: 2},
		})
		getMore := mtest.CreateCursorResponse(0, "test.survivor_status", mtest.NextBatch)
		mt.AddMockResponses(first, getMore)

		err := store.MarkEliminated("user1", 2, "TeamY", testCorrection())
		assert.NoError(t, err)
	})
}

func TestMarkEliminated_UpdatesDriftedRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("updates when persisted week differs", func(mt *mtest.T) {
		store := newTestStore(mt)

		first := mtest.CreateCursorResponse(1, "test.survivor_status", mtest.FirstBatch, bson.D{
			{Key: "participantid", Value: "user1"},
			{Key: "pool", Value: "test_pool_2025"},
			{Key: "eliminated", Value: false},
		})
		getMore := mtest.CreateCursorResponse(0, "test.survivor_status", mtest.NextBatch)
		updateSuccess := bson.D{
			{Key: "ok", Value: 1},
			{Key: "nModified", Value: 1},
		}
		mt.AddMockResponses(first, getMore, updateSuccess)

		err := store.MarkEliminated("user1", 2, "TeamY", testCorrection())
		assert.NoError(t, err)
	})
}
