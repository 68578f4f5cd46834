package repository

import (
	"fmt"
	"log"
	"sync"

	"innovision/internal/firebase"
	"innovision/internal/models"

	firebaseAuth "firebase.google.com/go/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cloud.google.com/go/firestore"
)

var Repository *FirebaseRepository

func init() {
	var err error
	Repository, err = NewFirebaseRepository()
	if err != nil {
		log.Panicf("Error creating repository: %v\n", err)
	}

	log.Printf("✅ Successfully created Firebase repository client")
}

type FirebaseRepository struct {
	authClient      *firebaseAuth.Client
	firestoreClient *firestore.Client

	profilesLock *sync.RWMutex
	profiles     map[string]*models.Profile
}

func NewFirebaseRepository() (*FirebaseRepository, error) {
	fr := &FirebaseRepository{
		profilesLock: &sync.RWMutex{},
		profiles:     make(map[string]*models.Profile),
	}

	authClient, err := firebase.App.Auth(firebase.Context)
	if err != nil {
		return nil, fmt.Errorf("Auth client error: %v\n", err)
	}
	fr.authClient = authClient

	firestoreClient, err := firebase.App.Firestore(firebase.Context)
	if err != nil {
		return nil, fmt.Errorf("Firestore client error: %v\n", err)
	}
	fr.firestoreClient = firestoreClient

	// Execute the listeners sequentially, in case later listeners need to utilize data fetched
	// by previous listeners
	initFns := []func(){fr.initializeUserProfilesListener}
	for _, initFn := range initFns {
		initFn()
	}

	return fr, nil
}

// createCollectionInitializer attaches a snapshot listener to the given
// collection and feeds every document through handleDoc, signalling done after
// the first full snapshot. This keeps an in-memory copy of the collection so
// we don't have to query Firestore each time we need one of its documents.
func (fr *FirebaseRepository) createCollectionInitializer(collection string, done *chan bool, handleDoc func(doc *firestore.DocumentSnapshot) error) error {
	it := fr.firestoreClient.Collection(collection).Snapshots(firebase.Context)
	var doOnce sync.Once

	for {
		snap, err := it.Next()
		// DeadlineExceeded will be returned when ctx is cancelled.
		if status.Code(err) == codes.DeadlineExceeded {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Snapshots.Next: %v", err)
		}
		if snap != nil {
			for {
				doc, err := snap.Documents.Next()
				if err == iterator.Done {
					doOnce.Do(func() {
						*done <- true
					})
					break
				}
				if err != nil {
					return fmt.Errorf("Documents.Next: %v", err)
				}

				if err := handleDoc(doc); err != nil {
					return err
				}
			}
		}
	}
}

// notFound reports whether a Firestore error means the document does not exist.
func notFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
