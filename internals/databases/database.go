package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edumanage_backend/internals/configs"
	"edumanage_backend/internals/databases/docstore"
)

var (
	Client *mongo.Client
	Store  docstore.Store
)

func ConnectDB() {
	log.Println("🔌 Koneksi ke MongoDB...")

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(configs.MongoURI).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(20)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("❌ Gagal koneksi ke MongoDB:\n%v", err)
	}

	// ping dulu supaya fail cepat kalau URI salah
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ MongoDB tidak merespon ping:\n%v", err)
	}

	Client = client
	Store = docstore.NewMongoStore(client.Database(configs.MongoDBName))
	log.Println("✅ Berhasil konek ke MongoDB:", configs.MongoDBName)
}

func DisconnectDB() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Println("⚠️ Gagal menutup koneksi MongoDB:", err)
	}
}
