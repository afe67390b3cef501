package schema

// StandardObjects returns a catalog of the common Sales Cloud objects:
// User, Account, Contact, Lead, Opportunity, Case, Task, Event, and
// Campaign, with their standard fields and child relationships. It is the
// default schema when no object model is supplied.
func StandardObjects() *Schema {
	return NewBuilder().
		WithObject(standardUser()).
		WithObject(standardAccount()).
		WithObject(standardContact()).
		WithObject(standardLead()).
		WithObject(standardOpportunity()).
		WithObject(standardCase()).
		WithObject(standardTask()).
		WithObject(standardEvent()).
		WithObject(standardCampaign()).
		Build()
}

func ownerField() *Field {
	return NewField("OwnerId", TypeReference).
		WithPolymorphicReference("User", "Group").
		WithRelationshipName("Owner")
}

func whatWhoFields(obj *Object) {
	obj.AddField(NewField("WhatId", TypeReference).
		WithPolymorphicReference("Account", "Opportunity", "Campaign", "Case").
		WithRelationshipName("What"))
	obj.AddField(NewField("WhoId", TypeReference).
		WithPolymorphicReference("Contact", "Lead").
		WithRelationshipName("Who"))
}

func standardUser() *Object {
	obj := NewObject("User")
	AddSystemFields(obj)
	obj.AddField(NewField("Username", TypeString))
	obj.AddField(NewField("FirstName", TypeString))
	obj.AddField(NewField("LastName", TypeString))
	obj.AddField(NewField("Name", TypeString))
	obj.AddField(NewField("Email", TypeEmail))
	obj.AddField(NewField("Phone", TypePhone))
	obj.AddField(NewField("Title", TypeString))
	obj.AddField(NewField("Department", TypeString))
	obj.AddField(NewField("CompanyName", TypeString))
	obj.AddField(NewField("IsActive", TypeBoolean))
	obj.AddField(NewField("UserType", TypePicklist))
	obj.AddField(NewField("ManagerId", TypeLookup).
		WithReference("User").
		WithRelationshipName("Manager"))
	return obj
}

func standardAccount() *Object {
	obj := NewObject("Account")
	AddSystemFields(obj)
	obj.AddField(NewField("Name", TypeString).WithNillable(false))
	obj.AddField(NewField("AccountNumber", TypeString))
	obj.AddField(NewField("Type", TypePicklist))
	obj.AddField(NewField("Industry", TypePicklist))
	obj.AddField(NewField("Rating", TypePicklist))
	obj.AddField(NewField("AnnualRevenue", TypeCurrency))
	obj.AddField(NewField("NumberOfEmployees", TypeInteger))
	obj.AddField(NewField("Phone", TypePhone))
	obj.AddField(NewField("Fax", TypePhone))
	obj.AddField(NewField("Website", TypeURL))
	obj.AddField(NewField("BillingStreet", TypeString))
	obj.AddField(NewField("BillingCity", TypeString))
	obj.AddField(NewField("BillingState", TypeString))
	obj.AddField(NewField("BillingPostalCode", TypeString))
	obj.AddField(NewField("BillingCountry", TypeString))
	obj.AddField(NewField("ShippingStreet", TypeString))
	obj.AddField(NewField("ShippingCity", TypeString))
	obj.AddField(NewField("ShippingState", TypeString))
	obj.AddField(NewField("ShippingPostalCode", TypeString))
	obj.AddField(NewField("ShippingCountry", TypeString))
	obj.AddField(NewField("Description", TypeLongTextArea))
	obj.AddField(NewField("LastActivityDate", TypeDate))
	obj.AddField(NewField("ParentId", TypeLookup).
		WithReference("Account").
		WithRelationshipName("Parent"))
	obj.AddField(ownerField())

	obj.AddChildRelationship(NewChildRelationship("Contacts", "Contact", "AccountId"))
	obj.AddChildRelationship(NewChildRelationship("Opportunities", "Opportunity", "AccountId"))
	obj.AddChildRelationship(NewChildRelationship("Cases", "Case", "AccountId"))
	obj.AddChildRelationship(NewChildRelationship("Tasks", "Task", "WhatId"))
	obj.AddChildRelationship(NewChildRelationship("Events", "Event", "WhatId"))
	obj.AddChildRelationship(NewChildRelationship("ChildAccounts", "Account", "ParentId"))
	return obj
}

func standardContact() *Object {
	obj := NewObject("Contact")
	AddSystemFields(obj)
	obj.AddField(NewField("Salutation", TypePicklist))
	obj.AddField(NewField("FirstName", TypeString))
	obj.AddField(NewField("LastName", TypeString).WithNillable(false))
	obj.AddField(NewField("Name", TypeString))
	obj.AddField(NewField("Title", TypeString))
	obj.AddField(NewField("Department", TypeString))
	obj.AddField(NewField("Email", TypeEmail))
	obj.AddField(NewField("Phone", TypePhone))
	obj.AddField(NewField("MobilePhone", TypePhone))
	obj.AddField(NewField("Birthdate", TypeDate))
	obj.AddField(NewField("MailingStreet", TypeString))
	obj.AddField(NewField("MailingCity", TypeString))
	obj.AddField(NewField("MailingState", TypeString))
	obj.AddField(NewField("MailingPostalCode", TypeString))
	obj.AddField(NewField("MailingCountry", TypeString))
	obj.AddField(NewField("Description", TypeLongTextArea))
	obj.AddField(NewField("AccountId", TypeLookup).
		WithReference("Account").
		WithRelationshipName("Account"))
	obj.AddField(NewField("ReportsToId", TypeLookup).
		WithReference("Contact").
		WithRelationshipName("ReportsTo"))
	obj.AddField(ownerField())

	obj.AddChildRelationship(NewChildRelationship("Cases", "Case", "ContactId"))
	obj.AddChildRelationship(NewChildRelationship("Tasks", "Task", "WhoId"))
	obj.AddChildRelationship(NewChildRelationship("Events", "Event", "WhoId"))
	return obj
}

func standardLead() *Object {
	obj := NewObject("Lead")
	AddSystemFields(obj)
	obj.AddField(NewField("Salutation", TypePicklist))
	obj.AddField(NewField("FirstName", TypeString))
	obj.AddField(NewField("LastName", TypeString).WithNillable(false))
	obj.AddField(NewField("Name", TypeString))
	obj.AddField(NewField("Title", TypeString))
	obj.AddField(NewField("Company", TypeString).WithNillable(false))
	obj.AddField(NewField("Email", TypeEmail))
	obj.AddField(NewField("Phone", TypePhone))
	obj.AddField(NewField("Website", TypeURL))
	obj.AddField(NewField("Street", TypeString))
	obj.AddField(NewField("City", TypeString))
	obj.AddField(NewField("State", TypeString))
	obj.AddField(NewField("PostalCode", TypeString))
	obj.AddField(NewField("Country", TypeString))
	obj.AddField(NewField("Industry", TypePicklist))
	obj.AddField(NewField("Status", TypePicklist).WithNillable(false))
	obj.AddField(NewField("LeadSource", TypePicklist))
	obj.AddField(NewField("Rating", TypePicklist))
	obj.AddField(NewField("AnnualRevenue", TypeCurrency))
	obj.AddField(NewField("NumberOfEmployees", TypeInteger))
	obj.AddField(NewField("IsConverted", TypeBoolean))
	obj.AddField(NewField("ConvertedDate", TypeDate))
	obj.AddField(NewField("ConvertedAccountId", TypeLookup).
		WithReference("Account").
		WithRelationshipName("ConvertedAccount"))
	obj.AddField(NewField("ConvertedContactId", TypeLookup).
		WithReference("Contact").
		WithRelationshipName("ConvertedContact"))
	obj.AddField(NewField("ConvertedOpportunityId", TypeLookup).
		WithReference("Opportunity").
		WithRelationshipName("ConvertedOpportunity"))
	obj.AddField(ownerField())

	obj.AddChildRelationship(NewChildRelationship("Tasks", "Task", "WhoId"))
	return obj
}

func standardOpportunity() *Object {
	obj := NewObject("Opportunity")
	AddSystemFields(obj)
	obj.AddField(NewField("Name", TypeString).WithNillable(false))
	obj.AddField(NewField("StageName", TypePicklist).WithNillable(false))
	obj.AddField(NewField("CloseDate", TypeDate).WithNillable(false))
	obj.AddField(NewField("Amount", TypeCurrency))
	obj.AddField(NewField("Probability", TypePercent))
	obj.AddField(NewField("ExpectedRevenue", TypeCurrency))
	obj.AddField(NewField("Type", TypePicklist))
	obj.AddField(NewField("LeadSource", TypePicklist))
	obj.AddField(NewField("IsClosed", TypeBoolean))
	obj.AddField(NewField("IsWon", TypeBoolean))
	obj.AddField(NewField("ForecastCategory", TypePicklist))
	obj.AddField(NewField("Description", TypeLongTextArea))
	obj.AddField(NewField("NextStep", TypeString))
	obj.AddField(NewField("AccountId", TypeLookup).
		WithReference("Account").
		WithRelationshipName("Account"))
	obj.AddField(NewField("CampaignId", TypeLookup).
		WithReference("Campaign").
		WithRelationshipName("Campaign"))
	obj.AddField(ownerField())

	obj.AddChildRelationship(NewChildRelationship("Tasks", "Task", "WhatId"))
	obj.AddChildRelationship(NewChildRelationship("Events", "Event", "WhatId"))
	return obj
}

func standardCase() *Object {
	obj := NewObject("Case")
	AddSystemFields(obj)
	obj.AddField(NewField("CaseNumber", TypeAuto))
	obj.AddField(NewField("Subject", TypeString))
	obj.AddField(NewField("Description", TypeLongTextArea))
	obj.AddField(NewField("Status", TypePicklist))
	obj.AddField(NewField("Priority", TypePicklist))
	obj.AddField(NewField("Origin", TypePicklist))
	obj.AddField(NewField("Reason", TypePicklist))
	obj.AddField(NewField("Type", TypePicklist))
	obj.AddField(NewField("IsClosed", TypeBoolean))
	obj.AddField(NewField("IsEscalated", TypeBoolean))
	obj.AddField(NewField("ClosedDate", TypeDateTime))
	obj.AddField(NewField("AccountId", TypeLookup).
		WithReference("Account").
		WithRelationshipName("Account"))
	obj.AddField(NewField("ContactId", TypeLookup).
		WithReference("Contact").
		WithRelationshipName("Contact"))
	obj.AddField(NewField("ParentId", TypeLookup).
		WithReference("Case").
		WithRelationshipName("Parent"))
	obj.AddField(ownerField())

	obj.AddChildRelationship(NewChildRelationship("Tasks", "Task", "WhatId"))
	return obj
}

func standardTask() *Object {
	obj := NewObject("Task")
	AddSystemFields(obj)
	obj.AddField(NewField("Subject", TypeString))
	obj.AddField(NewField("Description", TypeLongTextArea))
	obj.AddField(NewField("Status", TypePicklist))
	obj.AddField(NewField("Priority", TypePicklist))
	obj.AddField(NewField("Type", TypePicklist))
	obj.AddField(NewField("ActivityDate", TypeDate))
	obj.AddField(NewField("CompletedDateTime", TypeDateTime))
	obj.AddField(NewField("IsClosed", TypeBoolean))
	obj.AddField(NewField("IsHighPriority", TypeBoolean))
	obj.AddField(NewField("CallType", TypePicklist))
	obj.AddField(NewField("CallDurationInSeconds", TypeInteger))
	whatWhoFields(obj)
	obj.AddField(ownerField())
	return obj
}

func standardEvent() *Object {
	obj := NewObject("Event")
	AddSystemFields(obj)
	obj.AddField(NewField("Subject", TypeString))
	obj.AddField(NewField("Description", TypeLongTextArea))
	obj.AddField(NewField("Location", TypeString))
	obj.AddField(NewField("Type", TypePicklist))
	obj.AddField(NewField("StartDateTime", TypeDateTime))
	obj.AddField(NewField("EndDateTime", TypeDateTime))
	obj.AddField(NewField("ActivityDate", TypeDate))
	obj.AddField(NewField("DurationInMinutes", TypeInteger))
	obj.AddField(NewField("IsAllDayEvent", TypeBoolean))
	obj.AddField(NewField("IsPrivate", TypeBoolean))
	whatWhoFields(obj)
	obj.AddField(ownerField())
	return obj
}

func standardCampaign() *Object {
	obj := NewObject("Campaign")
	AddSystemFields(obj)
	obj.AddField(NewField("Name", TypeString).WithNillable(false))
	obj.AddField(NewField("Type", TypePicklist))
	obj.AddField(NewField("Status", TypePicklist))
	obj.AddField(NewField("StartDate", TypeDate))
	obj.AddField(NewField("EndDate", TypeDate))
	obj.AddField(NewField("IsActive", TypeBoolean))
	obj.AddField(NewField("BudgetedCost", TypeCurrency))
	obj.AddField(NewField("ActualCost", TypeCurrency))
	obj.AddField(NewField("ExpectedRevenue", TypeCurrency))
	obj.AddField(NewField("NumberOfLeads", TypeInteger))
	obj.AddField(NewField("NumberOfOpportunities", TypeInteger))
	obj.AddField(NewField("ParentId", TypeLookup).
		WithReference("Campaign").
		WithRelationshipName("Parent"))
	obj.AddField(ownerField())

	obj.AddChildRelationship(NewChildRelationship("Opportunities", "Opportunity", "CampaignId"))
	obj.AddChildRelationship(NewChildRelationship("ChildCampaigns", "Campaign", "ParentId"))
	return obj
}
