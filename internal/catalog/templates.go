// Package catalog holds the bilingual template and form catalogs consumed
// read-only by the dialogue engine.
//
// The copy is configuration data: the engine never edits it, only looks
// entries up by state or form name.
package catalog

import "github.com/propdesk/tenantpipe/internal/models"

// templates maps every dialogue state to its bilingual template entry.
var templates = map[models.StateType]models.TemplateEntry{
	models.StateStart: {
		Text: models.Localized{
			EN: "Hello! I'm your Elite Immobilier assistant. I can help with maintenance requests, billing, lease questions, and more. How can I assist you today?",
			FR: "Bonjour! Je suis votre assistant Elite Immobilier. Je peux vous aider avec les demandes d'entretien, la facturation, les questions de bail, et plus encore. Comment puis-je vous aider aujourd'hui?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Maintenance", FR: "Entretien"}, Value: "maintenance", NextState: models.StateMaintIntro},
			{Label: models.Localized{EN: "Billing", FR: "Facturation"}, Value: "billing", NextState: models.StateBillingIntro},
			{Label: models.Localized{EN: "Lease", FR: "Bail"}, Value: "lease", NextState: models.StateLeaseIntro},
			{Label: models.Localized{EN: "Emergency", FR: "Urgence"}, Value: "emergency", NextState: models.StateEmergencyGate},
			{Label: models.Localized{EN: "Other", FR: "Autre"}, Value: "other", NextState: models.StateMainMenu},
		},
	},

	models.StateMainMenu: {
		Text: models.Localized{
			EN: "What can I help you with today?",
			FR: "Avec quoi puis-je vous aider aujourd'hui?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "🔧 Maintenance", FR: "🔧 Entretien"}, Value: "maintenance", NextState: models.StateMaintIntro},
			{Label: models.Localized{EN: "💳 Billing", FR: "💳 Facturation"}, Value: "billing", NextState: models.StateBillingIntro},
			{Label: models.Localized{EN: "📄 Lease", FR: "📄 Bail"}, Value: "lease", NextState: models.StateLeaseIntro},
			{Label: models.Localized{EN: "🚗 Parking", FR: "🚗 Stationnement"}, Value: "parking", NextState: models.StateParkingIntro},
			{Label: models.Localized{EN: "🌐 Internet", FR: "🌐 Internet"}, Value: "internet", NextState: models.StateInternetIntro},
			{Label: models.Localized{EN: "📋 Status", FR: "📋 Statut"}, Value: "status", NextState: models.StateStatusIntro},
			{Label: models.Localized{EN: "📁 Documents", FR: "📁 Documents"}, Value: "documents", NextState: models.StateDocsIntro},
			{Label: models.Localized{EN: "👤 Talk to Person", FR: "👤 Parler à quelqu'un"}, Value: "handoff", NextState: models.StateHandoffIntro},
		},
	},

	models.StateEmergencyGate: {
		Text: models.Localized{
			EN: "Is this a true emergency (active leak, fire/smoke, gas smell, a situation requiring emergency workers, or no heat in winter)?",
			FR: "S'agit-il d'une véritable urgence (fuite active, feu/fumée, odeur de gaz, situation nécessitant les services d'urgence, ou absence de chauffage en hiver)?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Yes", FR: "Oui"}, Value: "yes", NextState: models.StateEmergencyNow},
			{Label: models.Localized{EN: "No", FR: "Non"}, Value: "no", NextState: models.StateMaintIntro},
		},
	},

	models.StateEmergencyNow: {
		Text: models.Localized{
			EN: "Please call the emergency line now: 873.660.1498. This line is for emergencies only. If safe, turn off water at the shutoff, cut power at the breaker, and stay clear.",
			FR: "SVP appelez la ligne d'urgence maintenant : 873.660.1498. Cette ligne est réservée aux urgences. Si c'est sécuritaire, fermez l'eau au robinet d'arrêt, coupez l'alimentation au disjoncteur et éloignez-vous.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateMaintIntro: {
		Text: models.Localized{
			EN: "Let's log a maintenance request.",
			FR: "Enregistrons une demande d'entretien.",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Continue", FR: "Continuer"}, Value: "continue", NextState: models.StateMaintIntro},
		},
	},

	models.StateBillingIntro: {
		Text: models.Localized{
			EN: "How can I help with billing?",
			FR: "Comment puis-je vous aider avec la facturation?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Pay rent", FR: "Payer le loyer"}, Value: "pay", NextState: models.StateBillingPay},
			{Label: models.Localized{EN: "Question about charges/fees", FR: "Question sur des frais"}, Value: "fees", NextState: models.StateBillingFees},
			{Label: models.Localized{EN: "See my balance", FR: "Voir mon solde"}, Value: "balance", NextState: models.StateBillingBalance},
			{Label: models.Localized{EN: "Portal help", FR: "Aide portail"}, Value: "portal", NextState: models.StatePortalIntro},
		},
	},

	models.StateBillingPay: {
		Text: models.Localized{
			EN: "Use your RentCafe tenant portal: Direct Debit, Debit, or Credit.",
			FR: "Utilisez votre portail RentCafe : prélèvement, débit ou carte de crédit.",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Open RentCafe", FR: "Ouvrir RentCafe"}, Value: "open_portal", NextState: models.StateBillingIntro},
			{Label: models.Localized{EN: "Forgot password?", FR: "Mot de passe oublié?"}, Value: "forgot_password", NextState: models.StatePortalIntro},
			{Label: models.Localized{EN: "Back", FR: "Retour"}, Value: "back", NextState: models.StateBillingIntro},
		},
	},

	models.StateBillingFees: {
		Text: models.Localized{
			EN: "We charge only to cover provider costs; unpaid service fees are sent to collections — they're not pursued at TAL. Please provide details about the fee in question and the date.",
			FR: "Nous facturons pour couvrir les coûts du fournisseur; les frais impayés vont en agence de recouvrement — non poursuivis au TAL. Veuillez fournir les détails sur les frais en question et la date.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateBillingBalance: {
		Text: models.Localized{
			EN: "I'll check your current balance. Please provide your unit number.",
			FR: "Je vais vérifier votre solde actuel. Veuillez fournir votre numéro d'unité.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateLeaseIntro: {
		Text: models.Localized{
			EN: "What lease matter can I help you with?",
			FR: "Avec quelle question de bail puis-je vous aider?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Lease transfer/assignment", FR: "Cession de bail"}, Value: "transfer", NextState: models.StateLeaseTransfer},
			{Label: models.Localized{EN: "Add/remove occupant", FR: "Ajouter/retirer un occupant"}, Value: "occupant", NextState: models.StateLeaseOccupant},
			{Label: models.Localized{EN: "Lease renewal", FR: "Renouvellement"}, Value: "renewal", NextState: models.StateLeaseRenewal},
			{Label: models.Localized{EN: "Early termination", FR: "Résiliation amiable"}, Value: "termination", NextState: models.StateLeaseTermination},
		},
	},

	models.StateLeaseTransfer: {
		Text: models.Localized{
			EN: "We follow Québec rules (TAL timelines). Please provide your name, target date, and reason for the transfer.",
			FR: "Nous suivons les règles du Québec (délais TAL). Veuillez fournir votre nom, la date cible et la raison du transfert.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateLeaseOccupant: {
		Text: models.Localized{
			EN: "Please provide: name, email, move-in date, relationship, and any required documents.",
			FR: "Veuillez fournir : nom, courriel, date d'emménagement, relation et tout document requis.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateLeaseRenewal: {
		Text: models.Localized{
			EN: "Leases auto-renew at current terms absent notices. What questions or changes do you have?",
			FR: "Les baux se renouvellent automatiquement aux conditions actuelles sans avis. Quelles questions ou changements avez-vous?",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateLeaseTermination: {
		Text: models.Localized{
			EN: "For amicable termination, please provide your target date and reason.",
			FR: "Pour une résiliation amiable, veuillez fournir votre date cible et la raison.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateMoveInIntro: {
		Text: models.Localized{
			EN: "I'll help you with move-in information. Please provide your planned move-in date/time and contact phone.",
			FR: "Je vais vous aider avec les informations d'emménagement. Veuillez fournir votre date/heure d'emménagement prévue et votre téléphone de contact.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateMoveOutIntro: {
		Text: models.Localized{
			EN: "For move-out, please provide your move-out date/time and forwarding email. I'll send you the cleaning checklist and equipment return information.",
			FR: "Pour le déménagement, veuillez fournir votre date/heure de déménagement et votre courriel de redirection. Je vous enverrai la liste de nettoyage et les informations de retour d'équipement.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateParkingIntro: {
		Text: models.Localized{
			EN: "Please provide: vehicle make/model/color, license plate, stall needs, and start date.",
			FR: "Veuillez fournir : marque/modèle/couleur du véhicule, plaque d'immatriculation, besoins de stationnement et date de début.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateNoiseIntro: {
		Text: models.Localized{
			EN: "Please describe: when, where, who/which unit if known, how often it occurs, and any evidence you have.",
			FR: "Veuillez décrire : quand, où, qui/quelle unité si connue, à quelle fréquence cela se produit, et toute preuve que vous avez.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateInternetIntro: {
		Text: models.Localized{
			EN: "Building internet/cable is via Videotron HELIX. Please provide your building + unit + symptom (no service/building-wide vs in-unit).",
			FR: "L'internet/câble du bâtiment est via Videotron HELIX. Veuillez fournir votre bâtiment + unité + symptôme (pas de service/à l'échelle du bâtiment vs dans l'unité).",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StatePortalIntro: {
		Text: models.Localized{
			EN: "I can help with password reset, email verification, account creation, or browser tips. What do you need help with?",
			FR: "Je peux vous aider avec la réinitialisation du mot de passe, la vérification de courriel, la création de compte ou des conseils de navigateur. Avec quoi avez-vous besoin d'aide?",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateStatusIntro: {
		Text: models.Localized{
			EN: "Do you have a Work Order number?",
			FR: "Avez-vous un numéro de demande de travail?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Yes", FR: "Oui"}, Value: "yes", NextState: models.StateStatusWithWO},
			{Label: models.Localized{EN: "No", FR: "Non"}, Value: "no", NextState: models.StateStatusByUnit},
		},
	},

	models.StateStatusWithWO: {
		Text: models.Localized{
			EN: "Please provide your Work Order number.",
			FR: "Veuillez fournir votre numéro de demande de travail.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateStatusByUnit: {
		Text: models.Localized{
			EN: "Please provide your unit number and describe the issue or date range.",
			FR: "Veuillez fournir votre numéro d'unité et décrire le problème ou la plage de dates.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateDocsIntro: {
		Text: models.Localized{
			EN: "What document do you need?",
			FR: "Quel document avez-vous besoin?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Rent receipts", FR: "Reçus de loyer"}, Value: "receipts", NextState: models.StateDocsIntro},
			{Label: models.Localized{EN: "Address attestation", FR: "Attestation d'adresse"}, Value: "attestation", NextState: models.StateDocsIntro},
			{Label: models.Localized{EN: "Proof of tenancy", FR: "Preuve de location"}, Value: "proof", NextState: models.StateDocsIntro},
			{Label: models.Localized{EN: "Insurance reminder", FR: "Rappel d'assurance"}, Value: "insurance", NextState: models.StateDocsIntro},
		},
	},

	models.StateHandoffIntro: {
		Text: models.Localized{
			EN: "I'll connect you to our team. Please provide a summary of your issue and your preferred contact method.",
			FR: "Je vais vous mettre en contact avec notre équipe. Veuillez fournir un résumé de votre problème et votre méthode de contact préférée.",
		},
		RequiresInput: true,
		InputType:     "text",
	},

	models.StateFallback: {
		Text: models.Localized{
			EN: "Sorry, I didn't catch that. I can help with maintenance, payments, leases, parking, portal, internet, documents, or connect you to a person.",
			FR: "Désolé, je n'ai pas compris. Je peux aider pour l'entretien, les paiements, les baux, le stationnement, le portail, l'internet, les documents, ou vous mettre en contact avec quelqu'un.",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Maintenance", FR: "Entretien"}, Value: "maintenance", NextState: models.StateMaintIntro},
			{Label: models.Localized{EN: "Payments", FR: "Paiements"}, Value: "billing", NextState: models.StateBillingIntro},
			{Label: models.Localized{EN: "Lease", FR: "Bail"}, Value: "lease", NextState: models.StateLeaseIntro},
			{Label: models.Localized{EN: "Parking", FR: "Stationnement"}, Value: "parking", NextState: models.StateParkingIntro},
			{Label: models.Localized{EN: "Internet", FR: "Internet"}, Value: "internet", NextState: models.StateInternetIntro},
			{Label: models.Localized{EN: "Human", FR: "Humain"}, Value: "handoff", NextState: models.StateHandoffIntro},
		},
	},

	models.StateEndOrMore: {
		Text: models.Localized{
			EN: "Anything else today?",
			FR: "Puis-je aider avec autre chose?",
		},
		QuickReplies: []models.QuickReply{
			{Label: models.Localized{EN: "Main menu", FR: "Menu principal"}, Value: "menu", NextState: models.StateMainMenu},
			{Label: models.Localized{EN: "Talk to a person", FR: "Parler à quelqu'un"}, Value: "handoff", NextState: models.StateHandoffIntro},
			{Label: models.Localized{EN: "End chat", FR: "Terminer"}, Value: "end", NextState: models.StateStart},
		},
	},
}
