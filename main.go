package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edumanage_backend/internals/configs"
	"edumanage_backend/internals/consistency"
	database "edumanage_backend/internals/databases"
)

// Reconciler daemon: replay ledger pembayaran secara periodik supaya
// enrollment yang tertinggal (crash di antara tulis ledger dan update
// kelas) tertambal lagi. Jalur live tidak pernah menunggu proses ini.
func main() {
	configs.LoadEnv()

	database.ConnectDB()
	defer database.DisconnectDB()

	coord := consistency.NewCoordinator(database.Store)

	runReconcile(coord)

	ticker := time.NewTicker(configs.ReconcileInterval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("✅ Reconciler jalan tiap %s", configs.ReconcileInterval)
	for {
		select {
		case <-ticker.C:
			runReconcile(coord)
		case <-quit:
			log.Println("👋 Reconciler berhenti")
			return
		}
	}
}

func runReconcile(coord *consistency.Coordinator) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	repaired, err := coord.Reconcile(ctx)
	if err != nil {
		log.Printf("❌ Reconcile gagal (repaired=%d): %v", repaired, err)
		return
	}
	if repaired > 0 {
		log.Printf("🔧 Reconcile selesai, %d enrollment diperbaiki", repaired)
	}
}
