package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roverops/mission-control/rover/config"
	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/service"
)

func TestSQLitePersistence(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sqlite_session_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	persistence, err := NewSQLitePersistence(filepath.Join(tempDir, "sessions.db"), configManager)
	if err != nil {
		t.Fatalf("Failed to create sqlite persistence: %v", err)
	}
	defer persistence.Close()

	missionConfig := configManager.GetDefault()
	roverEngine, err := engine.NewEngine(missionConfig)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	session := &service.Session{
		ID:             "sq1",
		Engine:         roverEngine,
		Config:         missionConfig,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	t.Run("Save and Load Session", func(t *testing.T) {
		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		if !persistence.Exists("sq1") {
			t.Error("Session row should exist after save")
		}

		loadedSession, err := persistence.Load("sq1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}

		if loadedSession.ID != session.ID {
			t.Errorf("Expected ID %s, got %s", session.ID, loadedSession.ID)
		}
		if loadedSession.Config.Name != session.Config.Name {
			t.Errorf("Expected config name %s, got %s", session.Config.Name, loadedSession.Config.Name)
		}
		if loadedSession.Engine.GetRover() != session.Engine.GetRover() {
			t.Errorf("Expected rover %+v, got %+v", session.Engine.GetRover(), loadedSession.Engine.GetRover())
		}
	})

	t.Run("Save Updates Existing Row", func(t *testing.T) {
		applied := session.Engine.Dispatch(engine.Forward)
		if !applied {
			t.Skip("Cannot test state persistence without an applied command")
		}

		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save updated session: %v", err)
		}

		loadedSession, err := persistence.Load("sq1")
		if err != nil {
			t.Fatalf("Failed to load updated session: %v", err)
		}

		if loadedSession.Engine.GetRover() != session.Engine.GetRover() {
			t.Errorf("Rover state not persisted correctly")
		}
		if len(loadedSession.Engine.GetCommandLog()) != len(session.Engine.GetCommandLog()) {
			t.Errorf("Command log not persisted correctly")
		}

		ids, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("Failed to list sessions: %v", err)
		}
		if len(ids) != 1 {
			t.Errorf("Upsert should not create duplicate rows, got %d", len(ids))
		}
	})

	t.Run("List All Sessions", func(t *testing.T) {
		session2 := &service.Session{
			ID:             "sq2",
			Engine:         roverEngine,
			Config:         missionConfig,
			CreatedAt:      time.Now(),
			LastAccessedAt: time.Now(),
		}
		if err := persistence.Save(session2); err != nil {
			t.Fatalf("Failed to save second session: %v", err)
		}

		sessionIDs, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("Failed to list sessions: %v", err)
		}

		found := make(map[string]bool)
		for _, id := range sessionIDs {
			found[id] = true
		}
		if !found["sq1"] || !found["sq2"] {
			t.Error("Expected sessions not found in list")
		}
	})

	t.Run("Delete Session", func(t *testing.T) {
		if err := persistence.Delete("sq2"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}

		if persistence.Exists("sq2") {
			t.Error("Session should not exist after delete")
		}

		if _, err := persistence.Load("sq2"); err == nil {
			t.Error("Should not be able to load deleted session")
		}
	})

	t.Run("Error Cases", func(t *testing.T) {
		if _, err := persistence.Load("nonexistent"); err == nil {
			t.Error("Should get error when loading non-existent session")
		}

		if err := persistence.Delete("nonexistent"); err == nil {
			t.Error("Should get error when deleting non-existent session")
		}

		if err := persistence.Save(nil); err == nil {
			t.Error("Should get error when saving nil session")
		}
	})
}

func TestSQLitePersistenceWithManager(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sqlite_manager_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configManager, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}

	dbPath := filepath.Join(tempDir, "sessions.db")
	persistence, err := NewSQLitePersistence(dbPath, configManager)
	if err != nil {
		t.Fatalf("Failed to create sqlite persistence: %v", err)
	}

	manager := NewManagerWithPersistence(persistence)

	missionConfig := configManager.GetDefault()
	created, err := manager.Create("restart-test", missionConfig)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	created.Engine.Dispatch(engine.Forward)
	if err := manager.Save("restart-test"); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if err := persistence.Close(); err != nil {
		t.Fatalf("Failed to close persistence: %v", err)
	}

	// Reopen the database to simulate a server restart
	persistence2, err := NewSQLitePersistence(dbPath, configManager)
	if err != nil {
		t.Fatalf("Failed to reopen sqlite persistence: %v", err)
	}
	defer persistence2.Close()

	manager2 := NewManagerWithPersistence(persistence2)
	if err := manager2.LoadPersistedSessions(); err != nil {
		t.Fatalf("Failed to load persisted sessions: %v", err)
	}

	restored, err := manager2.Get("restart-test")
	if err != nil {
		t.Fatalf("Failed to get restored session: %v", err)
	}
	if restored.Engine.GetRover() != created.Engine.GetRover() {
		t.Errorf("Expected rover %+v after restart, got %+v", created.Engine.GetRover(), restored.Engine.GetRover())
	}
}
