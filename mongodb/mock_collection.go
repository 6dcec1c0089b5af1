package mongodb

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MockCollection is a testify double for CollectionAPI. FindOne expectations
// return a *mongo.SingleResult, build one with mongo.NewSingleResultFromDocument.
type MockCollection struct {
	mock.Mock
}

func (mc *MockCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	args := mc.Called(ctx, filter, opts)
	return args.Get(0).(*mongo.SingleResult)
}

func (mc *MockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	args := mc.Called(ctx, filter, opts)
	var cursor *mongo.Cursor
	if v := args.Get(0); v != nil {
		cursor = v.(*mongo.Cursor)
	}
	return cursor, args.Error(1)
}

func (mc *MockCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	args := mc.Called(ctx, filter, opts)
	return args.Get(0).(int64), args.Error(1)
}

func (mc *MockCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	args := mc.Called(ctx, document, opts)
	var result *mongo.InsertOneResult
	if v := args.Get(0); v != nil {
		result = v.(*mongo.InsertOneResult)
	}
	return result, args.Error(1)
}

func (mc *MockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	args := mc.Called(ctx, filter, update, opts)
	var result *mongo.UpdateResult
	if v := args.Get(0); v != nil {
		result = v.(*mongo.UpdateResult)
	}
	return result, args.Error(1)
}

func (mc *MockCollection) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	args := mc.Called(ctx, filter, replacement, opts)
	var result *mongo.UpdateResult
	if v := args.Get(0); v != nil {
		result = v.(*mongo.UpdateResult)
	}
	return result, args.Error(1)
}

func (mc *MockCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	args := mc.Called(ctx, filter, opts)
	var result *mongo.DeleteResult
	if v := args.Get(0); v != nil {
		result = v.(*mongo.DeleteResult)
	}
	return result, args.Error(1)
}
