package catalog

import "github.com/propdesk/tenantpipe/internal/models"

// Form names known to the catalog.
const (
	FormMaintenanceRequest = "maintenance_request"
	FormEmergencyAlert     = "emergency_alert"
	FormBillingFees        = "billing_fees"
	FormBalanceInquiry     = "balance_inquiry"
	FormLeaseTransfer      = "lease_transfer"
	FormLeaseOccupant      = "lease_occupant"
	FormParkingRequest     = "parking_request"
	FormMoveIn             = "move_in"
	FormMoveOut            = "move_out"
	FormNoiseComplaint     = "noise_complaint"
	FormPortalHelp         = "portal_help"
	FormDocumentRequest    = "document_request"
	FormHandoff            = "handoff"
)

// issueTypeOptions enumerates the maintenance issue categories.
var issueTypeOptions = []models.SlotOption{
	{Value: "plumbing", Label: models.Localized{EN: "Plumbing", FR: "Plomberie"}},
	{Value: "electrical", Label: models.Localized{EN: "Electrical", FR: "Électricité"}},
	{Value: "appliance", Label: models.Localized{EN: "Appliance", FR: "Électroménager"}},
	{Value: "lock", Label: models.Localized{EN: "Lock", FR: "Serrure"}},
	{Value: "heating", Label: models.Localized{EN: "Heating", FR: "Chauffage"}},
	{Value: "pests", Label: models.Localized{EN: "Pests", FR: "Parasites"}},
	{Value: "internet", Label: models.Localized{EN: "Internet", FR: "Internet"}},
	{Value: "other", Label: models.Localized{EN: "Other", FR: "Autre"}},
}

var contactMethodOptions = []models.SlotOption{
	{Value: "phone", Label: models.Localized{EN: "Phone", FR: "Téléphone"}},
	{Value: "email", Label: models.Localized{EN: "Email", FR: "Courriel"}},
}

// forms maps form name to its immutable definition.
var forms = map[string]models.FormDefinition{
	FormMaintenanceRequest: {
		Name: FormMaintenanceRequest,
		Slots: []models.SlotDefinition{
			{
				Name: "confirm_non_emergency", Type: models.SlotTypeBoolean, Required: true,
				Label: models.Localized{
					EN: "Confirm this is not an emergency (Yes/No)",
					FR: "Confirmez que ce n'est pas une urgence (Oui/Non)",
				},
			},
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "What is your unit number?",
					FR: "Quel est votre numéro d'unité?",
				},
				Validation: models.SlotValidation{Pattern: "^[A-Za-z0-9-]+$", MinLength: 1, MaxLength: 10},
			},
			{
				Name: "building_address", Type: models.SlotTypeText, Required: false,
				Label: models.Localized{
					EN: "Building address (optional)",
					FR: "Adresse du bâtiment (optionnel)",
				},
			},
			{
				Name: "issue_type", Type: models.SlotTypeSelect, Required: true,
				Label: models.Localized{
					EN: "What type of issue is this?",
					FR: "Quel type de problème est-ce?",
				},
				Options: issueTypeOptions,
			},
			{
				Name: "description", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Please describe the issue in detail",
					FR: "Veuillez décrire le problème en détail",
				},
				Validation: models.SlotValidation{MinLength: 10, MaxLength: 500},
			},
			{
				Name: "access_permission", Type: models.SlotTypeBoolean, Required: true,
				Label: models.Localized{
					EN: "Do you give permission for maintenance to access your unit? (Yes/No)",
					FR: "Donnez-vous la permission à l'entretien d'accéder à votre unité? (Oui/Non)",
				},
			},
			{
				Name: "best_time", Type: models.SlotTypeText, Required: false,
				Label: models.Localized{
					EN: "If yes, what is the best time window for access?",
					FR: "Si oui, quelle est la meilleure plage horaire pour l'accès?",
				},
			},
			{
				Name: "pets_notes", Type: models.SlotTypeText, Required: false,
				Label: models.Localized{
					EN: "Any pets or special access notes?",
					FR: "Des animaux ou des notes d'accès spéciales?",
				},
			},
			{
				Name: "contact_phone", Type: models.SlotTypePhone, Required: false,
				Label: models.Localized{
					EN: "Contact phone number (optional)",
					FR: "Numéro de téléphone de contact (optionnel)",
				},
				Validation: models.SlotValidation{Pattern: "^.{3,30}$"},
			},
			{
				Name: "contact_email", Type: models.SlotTypeEmail, Required: false,
				Label: models.Localized{
					EN: "Contact email (optional)",
					FR: "Courriel de contact (optionnel)",
				},
			},
			{
				Name: "preferred_contact", Type: models.SlotTypeSelect, Required: true,
				Label: models.Localized{
					EN: "Preferred contact method",
					FR: "Méthode de contact préférée",
				},
				Options: contactMethodOptions,
			},
		},
		SubmitAction: models.EndpointWorkOrders,
		ConfirmationMessage: models.Localized{
			EN: "Thanks — your request was created: WO #{{ticket}}. We assign/respond within 48h and aim to complete within 5 business days.",
			FR: "Merci — votre demande est créée : WO #{{ticket}}. Nous attribuons/répondons sous 48 h et visons une complétion sous 5 jours ouvrables.",
		},
	},

	FormEmergencyAlert: {
		Name: FormEmergencyAlert,
		Slots: []models.SlotDefinition{
			{
				Name: "summary", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Please briefly describe the emergency situation",
					FR: "Veuillez décrire brièvement la situation d'urgence",
				},
				Validation: models.SlotValidation{MinLength: 10, MaxLength: 200},
			},
			{
				Name: "contact_phone", Type: models.SlotTypePhone, Required: false,
				Label: models.Localized{
					EN: "Your contact phone number",
					FR: "Votre numéro de téléphone de contact",
				},
				Validation: models.SlotValidation{Pattern: "^.{3,30}$"},
			},
			{
				Name: "contact_email", Type: models.SlotTypeEmail, Required: false,
				Label: models.Localized{
					EN: "Your contact email",
					FR: "Votre courriel de contact",
				},
			},
		},
		SubmitAction: models.EndpointEmergencyAlert,
		ConfirmationMessage: models.Localized{
			EN: "Emergency alert has been sent. Please call 873.660.1498 immediately if you haven't already.",
			FR: "L'alerte d'urgence a été envoyée. Veuillez appeler le 873.660.1498 immédiatement si vous ne l'avez pas déjà fait.",
		},
	},

	FormBillingFees: {
		Name: FormBillingFees,
		Slots: []models.SlotDefinition{
			{
				Name: "fee_description", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "What fee are you asking about?",
					FR: "De quels frais parlez-vous?",
				},
				Validation: models.SlotValidation{MinLength: 5, MaxLength: 200},
			},
			{
				Name: "fee_date", Type: models.SlotTypeDate, Required: true,
				Label: models.Localized{
					EN: "What date was this fee charged?",
					FR: "À quelle date ces frais ont-ils été facturés?",
				},
			},
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
		},
		SubmitAction: models.EndpointBillingCase,
		ConfirmationMessage: models.Localized{
			EN: "Your billing inquiry has been submitted. We'll review and respond within 2 business days.",
			FR: "Votre demande de facturation a été soumise. Nous examinerons et répondrons dans les 2 jours ouvrables.",
		},
	},

	FormBalanceInquiry: {
		Name: FormBalanceInquiry,
		Slots: []models.SlotDefinition{
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
				Validation: models.SlotValidation{Pattern: "^[A-Za-z0-9-]+$", MinLength: 1, MaxLength: 10},
			},
		},
		SubmitAction: models.EndpointLedger,
		ConfirmationMessage: models.Localized{
			EN: "Your current balance is {{balance}} as of {{date}}.",
			FR: "Votre solde actuel est de {{balance}} en date du {{date}}.",
		},
	},

	FormLeaseTransfer: {
		Name: FormLeaseTransfer,
		Slots: []models.SlotDefinition{
			{
				Name: "requester_name", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your full name",
					FR: "Votre nom complet",
				},
			},
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
			{
				Name: "target_date", Type: models.SlotTypeDate, Required: true,
				Label: models.Localized{
					EN: "Target transfer date",
					FR: "Date cible du transfert",
				},
			},
			{
				Name: "reason", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Reason for lease transfer",
					FR: "Raison du transfert de bail",
				},
				Validation: models.SlotValidation{MinLength: 10, MaxLength: 300},
			},
		},
		SubmitAction: models.EndpointLeaseTransfer,
		ConfirmationMessage: models.Localized{
			EN: "Your lease transfer request has been submitted. We'll send you the next steps and checklist within 2 business days.",
			FR: "Votre demande de transfert de bail a été soumise. Nous vous enverrons les prochaines étapes et la liste de vérification dans les 2 jours ouvrables.",
		},
	},

	FormLeaseOccupant: {
		Name: FormLeaseOccupant,
		Slots: []models.SlotDefinition{
			{
				Name: "name", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Occupant full name",
					FR: "Nom complet de l'occupant",
				},
			},
			{
				Name: "email", Type: models.SlotTypeEmail, Required: true,
				Label: models.Localized{
					EN: "Occupant email",
					FR: "Courriel de l'occupant",
				},
			},
			{
				Name: "move_in_date", Type: models.SlotTypeDate, Required: true,
				Label: models.Localized{
					EN: "Planned move-in date",
					FR: "Date d'emménagement prévue",
				},
			},
			{
				Name: "relationship", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Relationship to leaseholder",
					FR: "Lien avec le locataire principal",
				},
			},
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
		},
		SubmitAction: models.EndpointLeaseOccupant,
		ConfirmationMessage: models.Localized{
			EN: "Your occupant request has been submitted. We'll confirm the required documents within 2 business days.",
			FR: "Votre demande d'occupant a été soumise. Nous confirmerons les documents requis dans les 2 jours ouvrables.",
		},
	},

	FormParkingRequest: {
		Name: FormParkingRequest,
		Slots: []models.SlotDefinition{
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
			{
				Name: "vehicle_make", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Vehicle make",
					FR: "Marque du véhicule",
				},
			},
			{
				Name: "vehicle_model", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Vehicle model",
					FR: "Modèle du véhicule",
				},
			},
			{
				Name: "vehicle_color", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Vehicle color",
					FR: "Couleur du véhicule",
				},
			},
			{
				Name: "license_plate", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "License plate number",
					FR: "Numéro de plaque d'immatriculation",
				},
			},
			{
				Name: "start_date", Type: models.SlotTypeDate, Required: true,
				Label: models.Localized{
					EN: "When do you need parking to start?",
					FR: "Quand avez-vous besoin que le stationnement commence?",
				},
			},
		},
		SubmitAction: models.EndpointParkingAssign,
		ConfirmationMessage: models.Localized{
			EN: "Your parking request has been submitted. We'll assign a stall or add you to the waitlist and notify you within 2 business days.",
			FR: "Votre demande de stationnement a été soumise. Nous attribuerons une place ou vous ajouterons à la liste d'attente et vous aviserons dans les 2 jours ouvrables.",
		},
	},

	FormMoveIn: {
		Name: FormMoveIn,
		Slots: []models.SlotDefinition{
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
			{
				Name: "planned_date", Type: models.SlotTypeDate, Required: true,
				Label: models.Localized{
					EN: "Planned move-in date/time",
					FR: "Date/heure d'emménagement prévue",
				},
			},
			{
				Name: "contact_phone", Type: models.SlotTypePhone, Required: true,
				Label: models.Localized{
					EN: "Contact phone number",
					FR: "Numéro de téléphone de contact",
				},
				Validation: models.SlotValidation{Pattern: "^.{3,30}$"},
			},
		},
		SubmitAction: models.EndpointMoveIn,
		ConfirmationMessage: models.Localized{
			EN: "Your move-in appointment request has been submitted for {{date}}. We'll confirm elevator booking and access details.",
			FR: "Votre demande de rendez-vous d'emménagement a été soumise pour le {{date}}. Nous confirmerons la réservation de l'ascenseur et les détails d'accès.",
		},
	},

	FormMoveOut: {
		Name: FormMoveOut,
		Slots: []models.SlotDefinition{
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
			{
				Name: "planned_date", Type: models.SlotTypeDate, Required: true,
				Label: models.Localized{
					EN: "Planned move-out date/time",
					FR: "Date/heure de déménagement prévue",
				},
			},
			{
				Name: "forwarding_email", Type: models.SlotTypeEmail, Required: true,
				Label: models.Localized{
					EN: "Forwarding email for the cleaning checklist",
					FR: "Courriel de redirection pour la liste de nettoyage",
				},
			},
		},
		SubmitAction: models.EndpointMoveOut,
		ConfirmationMessage: models.Localized{
			EN: "Your move-out appointment request has been submitted for {{date}}. We'll email the cleaning checklist and equipment return steps.",
			FR: "Votre demande de rendez-vous de déménagement a été soumise pour le {{date}}. Nous enverrons la liste de nettoyage et les étapes de retour d'équipement par courriel.",
		},
	},

	FormNoiseComplaint: {
		Name: FormNoiseComplaint,
		Slots: []models.SlotDefinition{
			{
				Name: "when", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "When did the noise occur?",
					FR: "Quand le bruit s'est-il produit?",
				},
			},
			{
				Name: "where", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Where is the noise coming from?",
					FR: "D'où vient le bruit?",
				},
			},
			{
				Name: "who_unit", Type: models.SlotTypeText, Required: false,
				Label: models.Localized{
					EN: "Which unit, if known? (optional)",
					FR: "Quelle unité, si connue? (optionnel)",
				},
			},
			{
				Name: "recurrence", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "How often does it occur?",
					FR: "À quelle fréquence cela se produit-il?",
				},
			},
			{
				Name: "evidence", Type: models.SlotTypeText, Required: false,
				Label: models.Localized{
					EN: "Any evidence (recordings, dates)? (optional)",
					FR: "Des preuves (enregistrements, dates)? (optionnel)",
				},
			},
			{
				Name: "reporter_unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
		},
		SubmitAction: models.EndpointNoise,
		ConfirmationMessage: models.Localized{
			EN: "Your noise complaint has been filed. We'll follow up with the unit concerned and keep your report confidential.",
			FR: "Votre plainte de bruit a été déposée. Nous ferons un suivi avec l'unité concernée et garderons votre signalement confidentiel.",
		},
	},

	FormPortalHelp: {
		Name: FormPortalHelp,
		Slots: []models.SlotDefinition{
			{
				Name: "issue_type", Type: models.SlotTypeSelect, Required: true,
				Label: models.Localized{
					EN: "What do you need help with?",
					FR: "Avec quoi avez-vous besoin d'aide?",
				},
				Options: []models.SlotOption{
					{Value: "password_reset", Label: models.Localized{EN: "Password reset", FR: "Réinitialisation du mot de passe"}},
					{Value: "email_verification", Label: models.Localized{EN: "Email verification", FR: "Vérification de courriel"}},
					{Value: "account_creation", Label: models.Localized{EN: "Account creation", FR: "Création de compte"}},
					{Value: "browser", Label: models.Localized{EN: "Browser tips", FR: "Conseils de navigateur"}},
				},
			},
			{
				Name: "email", Type: models.SlotTypeEmail, Required: true,
				Label: models.Localized{
					EN: "The email on your portal account",
					FR: "Le courriel de votre compte portail",
				},
			},
			{
				Name: "description", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Briefly describe the problem",
					FR: "Décrivez brièvement le problème",
				},
				Validation: models.SlotValidation{MinLength: 5, MaxLength: 300},
			},
		},
		SubmitAction: models.EndpointPortalHelp,
		ConfirmationMessage: models.Localized{
			EN: "Your portal help request has been submitted. We'll respond by email within 1 business day.",
			FR: "Votre demande d'aide portail a été soumise. Nous répondrons par courriel dans 1 jour ouvrable.",
		},
	},

	FormDocumentRequest: {
		Name: FormDocumentRequest,
		Slots: []models.SlotDefinition{
			{
				Name: "document_type", Type: models.SlotTypeSelect, Required: true,
				Label: models.Localized{
					EN: "Which document do you need?",
					FR: "Quel document avez-vous besoin?",
				},
				Options: []models.SlotOption{
					{Value: "receipts", Label: models.Localized{EN: "Rent receipts", FR: "Reçus de loyer"}},
					{Value: "attestation", Label: models.Localized{EN: "Address attestation", FR: "Attestation d'adresse"}},
					{Value: "proof", Label: models.Localized{EN: "Proof of tenancy", FR: "Preuve de location"}},
					{Value: "insurance", Label: models.Localized{EN: "Insurance reminder", FR: "Rappel d'assurance"}},
				},
			},
			{
				Name: "unit", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your unit number",
					FR: "Votre numéro d'unité",
				},
			},
			{
				Name: "email_target", Type: models.SlotTypeEmail, Required: true,
				Label: models.Localized{
					EN: "Email address to send the document to",
					FR: "Adresse courriel pour l'envoi du document",
				},
			},
		},
		SubmitAction: models.EndpointDocuments,
		ConfirmationMessage: models.Localized{
			EN: "Your document request has been submitted (ref {{ticket}}). You'll receive it by email within 2 business days.",
			FR: "Votre demande de document a été soumise (réf {{ticket}}). Vous le recevrez par courriel dans les 2 jours ouvrables.",
		},
	},

	FormHandoff: {
		Name: FormHandoff,
		Slots: []models.SlotDefinition{
			{
				Name: "summary", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Please summarize your issue or question",
					FR: "Veuillez résumer votre problème ou question",
				},
				Validation: models.SlotValidation{MinLength: 10, MaxLength: 500},
			},
			{
				Name: "preferred_contact", Type: models.SlotTypeSelect, Required: true,
				Label: models.Localized{
					EN: "How would you prefer to be contacted?",
					FR: "Comment préféreriez-vous être contacté?",
				},
				Options: contactMethodOptions,
			},
			{
				Name: "contact_info", Type: models.SlotTypeText, Required: true,
				Label: models.Localized{
					EN: "Your contact information (phone or email)",
					FR: "Vos informations de contact (téléphone ou courriel)",
				},
			},
			{
				Name: "unit", Type: models.SlotTypeText, Required: false,
				Label: models.Localized{
					EN: "Your unit number (if applicable)",
					FR: "Votre numéro d'unité (si applicable)",
				},
			},
		},
		SubmitAction: models.EndpointHandoff,
		ConfirmationMessage: models.Localized{
			EN: "Your request has been forwarded to our team. We'll respond within one business day during business hours (Mon-Fri 8:00-16:00 EST).",
			FR: "Votre demande a été transmise à notre équipe. Nous répondrons dans un jour ouvrable pendant les heures d'affaires (Lun-Ven 8h00-16h00 EST).",
		},
	},
}
