package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEmailConflict(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: []mongo.WriteError{
			{Code: 11000, Message: "E11000 duplicate key error collection: campus_sos.users index: email_1"},
		},
	}
	assert.True(t, emailConflict(dup))

	bulkDup := mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{
			{WriteError: mongo.WriteError{Code: 11000}},
		},
	}
	assert.True(t, emailConflict(bulkDup))

	assert.False(t, emailConflict(errors.New("connection reset")))
	assert.False(t, emailConflict(nil))
	assert.False(t, emailConflict(mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 121, Message: "document failed validation"}},
	}))
}
